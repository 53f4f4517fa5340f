// Package types defines the shared data structures for the turn engine.
// This package contains type definitions and trivial accessors only, no
// game logic.
package types

// Point is a cell coordinate on the current map.
type Point struct {
	X int
	Y int
}

// Add returns p offset by d.
func (p Point) Add(d Point) Point {
	return Point{X: p.X + d.X, Y: p.Y + d.Y}
}

// CommandKind names a player-selectable intent.
type CommandKind string

const (
	CmdMove     CommandKind = "move"
	CmdUse      CommandKind = "use"
	CmdThrow    CommandKind = "throw"
	CmdOpen     CommandKind = "open"
	CmdDip      CommandKind = "dip"
	CmdSearch   CommandKind = "search"
	CmdInteract CommandKind = "interact"
	CmdGive     CommandKind = "give"
	CmdLook     CommandKind = "look"
	CmdFire     CommandKind = "fire"
	CmdClose    CommandKind = "close"
	CmdDrink    CommandKind = "drink"
	CmdRead     CommandKind = "read"
	CmdZap      CommandKind = "zap"
	CmdEat      CommandKind = "eat"
	CmdRest     CommandKind = "rest"
	CmdGet      CommandKind = "get"
	CmdGoDown   CommandKind = "go_down"
	CmdGoUp     CommandKind = "go_up"
	CmdExit     CommandKind = "exit"
	CmdBash     CommandKind = "bash"
	CmdDig      CommandKind = "dig"
	CmdPray     CommandKind = "pray"
	CmdOffer    CommandKind = "offer"
	CmdAmmo     CommandKind = "change_ammo"
	CmdCast     CommandKind = "cast"
	CmdShortcut CommandKind = "short_cut"
)

// NoIndex marks an absent actor or item reference.
const NoIndex = -1

// Command is the input for one action attempt, supplied by the UI layer.
type Command struct {
	Kind    CommandKind
	Actor   int   // acting actor index; 0 is the player
	Item    int   // active item index, or NoIndex
	Tool    int   // secondary item (the liquid for dip), or NoIndex
	Target  int   // active target actor index, or NoIndex
	Dest    Point // pending destination cell (move, throw)
	HasDest bool
	Running bool // movement issued while running
	Skip    bool // explicit "skip" modifier (displace instead of talking)
	Spell   int  // spell id for cast
	Slot    int  // shortcut slot for short_cut
}

// Outcome is the result of a single action attempt. The zero value is
// not a valid outcome.
type Outcome int

const (
	OutcomeTurnEnds Outcome = iota + 1
	OutcomeTurnContinuesWithError
	OutcomeTurnBeginsAgain
	OutcomeExitCurrentMap
	OutcomeOpenSubmenu
	OutcomeTerminateSession
)

func (o Outcome) String() string {
	switch o {
	case OutcomeTurnEnds:
		return "turn_ends"
	case OutcomeTurnContinuesWithError:
		return "turn_continues_with_error"
	case OutcomeTurnBeginsAgain:
		return "turn_begins_again"
	case OutcomeExitCurrentMap:
		return "exit_current_map"
	case OutcomeOpenSubmenu:
		return "open_submenu"
	case OutcomeTerminateSession:
		return "terminate_session"
	default:
		return "unset"
	}
}

// ExitReason tags an OutcomeExitCurrentMap result.
type ExitReason string

const (
	ExitNone     ExitReason = ""
	ExitStairs   ExitReason = "stairs"
	ExitLeaveMap ExitReason = "leave_map"
	ExitTeleport ExitReason = "teleport"
	ExitGate     ExitReason = "strange_gate"
)

// SubmenuKind tags an OutcomeOpenSubmenu result.
type SubmenuKind string

const (
	SubmenuNone           SubmenuKind = ""
	SubmenuGive           SubmenuKind = "give"
	SubmenuAllyInventory  SubmenuKind = "ally_inventory"
	SubmenuPickUp         SubmenuKind = "pick_up"
	SubmenuHouseBoard     SubmenuKind = "house_board"
	SubmenuQuestBoard     SubmenuKind = "quest_board"
	SubmenuScene          SubmenuKind = "scene"
	SubmenuPlant          SubmenuKind = "plant"
	SubmenuBlending       SubmenuKind = "blending"
	SubmenuCrafting       SubmenuKind = "crafting"
	SubmenuGacha          SubmenuKind = "gacha"
	SubmenuCasino         SubmenuKind = "casino"
	SubmenuShopTrunk      SubmenuKind = "shop_trunk"
	SubmenuContainer      SubmenuKind = "container"
	SubmenuCardCollection SubmenuKind = "card_collection"
)

// Submenu describes the menu the outer loop must hand control to.
type Submenu struct {
	Kind   SubmenuKind
	Mode   int // menu sub-mode (e.g. crafting product type)
	File   int // persisted storage number, when relevant
	Item   int // item index that opened the menu, or NoIndex
	Target int // actor the menu acts on, when relevant
}

// Tone classifies a message for display styling.
type Tone int

const (
	ToneNormal Tone = iota
	ToneGood
	ToneBad
	ToneAlert
	ToneDivine
	ToneDialog
)

// Message is one line of feedback produced by an action. Key is a stable
// identifier; Text is the English rendering.
type Message struct {
	Key  string
	Text string
	Tone Tone
}

// Event is emitted by a handler after a state change.
type Event struct {
	Type string
	Data map[string]any
}

// Result is the output of a single action attempt.
type Result struct {
	Outcome  Outcome
	Exit     ExitReason
	Submenu  Submenu
	Messages []Message
	Events   []Event
}

// Say appends a message.
func (r *Result) Say(key, text string, tone Tone) {
	r.Messages = append(r.Messages, Message{Key: key, Text: text, Tone: tone})
}

// Emit appends an event.
func (r *Result) Emit(typ string, data map[string]any) {
	r.Events = append(r.Events, Event{Type: typ, Data: data})
}
