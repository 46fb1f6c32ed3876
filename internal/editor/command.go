package editor

import (
	"github.com/piwi3910/StandPlan/internal/engine"
	"github.com/piwi3910/StandPlan/internal/model"
)

// CommandKind identifies a user action.
type CommandKind int

const (
	CmdAddStand CommandKind = iota
	CmdAddUtility
	CmdMove
	CmdNudge
	CmdRotate
	CmdDelete
	CmdPurge
	CmdDuplicate
	CmdAlign
	CmdSetProperty
	CmdUndo
	CmdMovePlaceable
	CmdPlaceBacklog
	CmdSelect
	CmdToggleSelect
	CmdBackgroundClick
	CmdClearSelection
)

var commandNames = [...]string{
	CmdAddStand:        "add-stand",
	CmdAddUtility:      "add-utility",
	CmdMove:            "move",
	CmdNudge:           "nudge",
	CmdRotate:          "rotate",
	CmdDelete:          "delete",
	CmdPurge:           "purge",
	CmdDuplicate:       "duplicate",
	CmdAlign:           "align",
	CmdSetProperty:     "set-property",
	CmdUndo:            "undo",
	CmdMovePlaceable:   "move-placeable",
	CmdPlaceBacklog:    "place-backlog",
	CmdSelect:          "select",
	CmdToggleSelect:    "toggle-select",
	CmdBackgroundClick: "background-click",
	CmdClearSelection:  "clear-selection",
}

func (k CommandKind) String() string {
	if k >= 0 && int(k) < len(commandNames) {
		return commandNames[k]
	}
	return "unknown"
}

// Command is a discrete user action. Only the fields its Kind needs are
// read.
type Command struct {
	Kind CommandKind

	ID          string // target object
	ContainerID string // drop target
	Shape       model.Shape
	Category    model.UtilityCategory
	DX, DY      float64 // meters, or direction for CmdNudge
	X, Y        float64 // percent, drop position
	Fine        bool    // precision nudge
	Degrees     int
	Offset      float64 // meters, duplicate offset
	Edge        engine.Edge
	Property    string
	Value       string
	Dragged     bool // background click ended a pan
}

// Dispatch executes a command and reports whether the layout or the
// selection changed. It is the single entry point input handlers use.
func (e *Editor) Dispatch(cmd Command) bool {
	changed := e.dispatch(cmd)
	e.logger.Debug("dispatch", "command", cmd.Kind, "changed", changed)
	return changed
}

func (e *Editor) dispatch(cmd Command) bool {
	switch cmd.Kind {
	case CmdAddStand:
		s, _ := e.AddStand(cmd.Shape)
		return s.ID != ""
	case CmdAddUtility:
		u, _ := e.AddUtilitySpace(cmd.Category)
		return u.ID != ""
	case CmdMove:
		return e.MoveSelection(cmd.DX, cmd.DY)
	case CmdNudge:
		return e.Nudge(sign(cmd.DX), sign(cmd.DY), cmd.Fine)
	case CmdRotate:
		return e.RotateSelection(cmd.Degrees)
	case CmdDelete:
		return e.DeleteSelection()
	case CmdPurge:
		return e.PurgeSelection()
	case CmdDuplicate:
		return e.DuplicateSelection(cmd.Offset)
	case CmdAlign:
		return e.AlignSelection(cmd.Edge)
	case CmdSetProperty:
		return e.SetProperty(cmd.Property, cmd.Value)
	case CmdUndo:
		return e.Undo()
	case CmdMovePlaceable:
		return e.MovePlaceable(cmd.ID, cmd.ContainerID, cmd.X, cmd.Y)
	case CmdPlaceBacklog:
		return e.PlaceBacklog() > 0
	case CmdSelect:
		before := e.selection.IDs()
		e.selection.Click(cmd.ID)
		return !sameIDs(before, e.selection.IDs())
	case CmdToggleSelect:
		e.selection.ToggleClick(cmd.ID)
		return true
	case CmdBackgroundClick:
		had := e.selection.Len() > 0
		e.selection.BackgroundClick(cmd.Dragged)
		return had && e.selection.Len() == 0
	case CmdClearSelection:
		had := e.selection.Len() > 0
		e.selection.Clear()
		return had
	}
	return false
}

func sign(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

func sameIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
