package tetris

import "fmt"

// Command is a discrete player intent consumed by Session.Apply.
type Command uint8

const (
	CmdNone Command = iota
	CmdMoveLeft
	CmdMoveRight
	CmdSoftDrop
	CmdRotate
	CmdHardDrop
	CmdTogglePause
	CmdRestart
)

var commandNames = [...]string{
	CmdNone:        "none",
	CmdMoveLeft:    "left",
	CmdMoveRight:   "right",
	CmdSoftDrop:    "soft_drop",
	CmdRotate:      "rotate",
	CmdHardDrop:    "hard_drop",
	CmdTogglePause: "pause",
	CmdRestart:     "restart",
}

// String returns the command's journal name.
func (c Command) String() string {
	if int(c) < len(commandNames) {
		return commandNames[c]
	}
	return fmt.Sprintf("command(%d)", c)
}

// MarshalText encodes the command by name.
func (c Command) MarshalText() ([]byte, error) {
	if int(c) >= len(commandNames) {
		return nil, fmt.Errorf("tetris: unknown command %d", c)
	}
	return []byte(commandNames[c]), nil
}

// UnmarshalText decodes a command name.
func (c *Command) UnmarshalText(text []byte) error {
	for i, name := range commandNames {
		if name == string(text) {
			*c = Command(i)
			return nil
		}
	}
	return fmt.Errorf("tetris: unknown command %q", text)
}
