// internal/events/command.go
package events

// Command is a command byte received over the control link. The values
// are fixed by the leader's protocol; 0xFF is the framing flag and is
// never a valid command.
type Command uint8

const (
	CmdStop         Command = 0x00
	CmdRotateCW90   Command = 0x02
	CmdRotateCW45   Command = 0x03
	CmdRotateCCW90  Command = 0x04
	CmdRotateCCW45  Command = 0x05
	CmdDriveFwdHalf Command = 0x08
	CmdDriveFwdFull Command = 0x09
	CmdDriveRevHalf Command = 0x10
	CmdDriveRevFull Command = 0x11
	CmdAlignBeacon  Command = 0x20
	CmdSearchTape   Command = 0x40
)

func (c Command) IsValid() bool {
	switch c {
	case CmdStop, CmdRotateCW90, CmdRotateCW45, CmdRotateCCW90, CmdRotateCCW45,
		CmdDriveFwdHalf, CmdDriveFwdFull, CmdDriveRevHalf, CmdDriveRevFull,
		CmdAlignBeacon, CmdSearchTape:
		return true
	}
	return false
}

func (c Command) String() string {
	switch c {
	case CmdStop:
		return "stop"
	case CmdRotateCW90:
		return "rotate_cw_90"
	case CmdRotateCW45:
		return "rotate_cw_45"
	case CmdRotateCCW90:
		return "rotate_ccw_90"
	case CmdRotateCCW45:
		return "rotate_ccw_45"
	case CmdDriveFwdHalf:
		return "drive_fwd_half"
	case CmdDriveFwdFull:
		return "drive_fwd_full"
	case CmdDriveRevHalf:
		return "drive_rev_half"
	case CmdDriveRevFull:
		return "drive_rev_full"
	case CmdAlignBeacon:
		return "align_beacon"
	case CmdSearchTape:
		return "search_tape"
	}
	return "invalid"
}
