package state

// CommandType identifies a Store mutation.
type CommandType string

const (
	CmdResetForNewSession CommandType = "reset_for_new_session"
	CmdLoadState          CommandType = "load_state"
	CmdSetStat            CommandType = "set_stat"
	CmdAdjustStat         CommandType = "adjust_stat"
	CmdAdjustMoney        CommandType = "adjust_money"
	CmdAdvanceTime        CommandType = "advance_time"
	CmdSetLocation        CommandType = "set_location"
	CmdSetLocationLabel   CommandType = "set_location_label"
	CmdAddItem            CommandType = "add_item"
	CmdRemoveItem         CommandType = "remove_item"
	CmdSetArrowKeyState   CommandType = "set_arrow_key_state"
)

// ArrowDirection names one of the four on-screen movement controls.
type ArrowDirection string

const (
	ArrowUp    ArrowDirection = "up"
	ArrowDown  ArrowDirection = "down"
	ArrowLeft  ArrowDirection = "left"
	ArrowRight ArrowDirection = "right"
)

// Command is a single Store mutation request. Only the fields relevant to
// the Type are read; commands are total functions over GameState and never
// fail at runtime (invalid stat or location names are programming errors
// caught by validation at the data boundary).
type Command struct {
	Type CommandType

	// reset_for_new_session
	Name   string
	Sprite string

	// load_state: a snapshot with per-field defaults already resolved by
	// the persistence adapter. Applied once, at session mount.
	Load *GameState

	// set_stat / adjust_stat
	Stat  Stat
	Value int
	Delta int

	// advance_time
	Minutes int
	Hours   int

	// set_location / set_location_label
	Location Location
	Label    string

	// add_item / remove_item
	Item *Item

	// set_arrow_key_state
	Direction ArrowDirection
	Pressed   bool
}

// Convenience constructors for the common commands.

func ResetForNewSession(name, sprite string) Command {
	return Command{Type: CmdResetForNewSession, Name: name, Sprite: sprite}
}

func LoadState(snapshot *GameState) Command {
	return Command{Type: CmdLoadState, Load: snapshot}
}

func SetStat(stat Stat, value int) Command {
	return Command{Type: CmdSetStat, Stat: stat, Value: value}
}

func AdjustStat(stat Stat, delta int) Command {
	return Command{Type: CmdAdjustStat, Stat: stat, Delta: delta}
}

func AdjustMoney(delta int) Command {
	return Command{Type: CmdAdjustMoney, Delta: delta}
}

func AdvanceTime(minutes, hours int) Command {
	return Command{Type: CmdAdvanceTime, Minutes: minutes, Hours: hours}
}

func SetLocation(location Location) Command {
	return Command{Type: CmdSetLocation, Location: location}
}

func SetLocationLabel(label string) Command {
	return Command{Type: CmdSetLocationLabel, Label: label}
}

func AddItem(item Item) Command {
	return Command{Type: CmdAddItem, Item: &item}
}

func RemoveItem(item Item) Command {
	return Command{Type: CmdRemoveItem, Item: &item}
}

func SetArrowKeyState(direction ArrowDirection, pressed bool) Command {
	return Command{Type: CmdSetArrowKeyState, Direction: direction, Pressed: pressed}
}
