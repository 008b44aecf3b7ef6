package vtio

// win32-input-mode key event: `CSI Vk ; Sc ; Uc ; Kd ; Cs ; Rc _`, the
// ConPTY convention for reporting raw Win32 console INPUT_RECORD key
// events over the VT wire (used by Windows Terminal and WSL). Grounded
// on the teacher's sibling parser (tcell's handleWinKey), adapted to
// this module's KeyEvent shape.
//
// Fields: Vk = virtual key code, Sc = scan code, Uc = UTF-16 code unit,
// Kd = 1 key-down/0 key-up, Cs = Win32 console modifier bitmask,
// Rc = repeat count.
func init() {
	d := Descriptor{
		Class: classCSI,
		Final: '_',
		Construct: func(params Params, raw []byte) (TerminalInputEvent, bool) {
			if params.Len() < 6 {
				return nil, false
			}
			uc := params.Param(2, 0)
			keyDown := params.Param(3, 1)
			controlState := params.Param(4, 0)
			repeat := params.Param(5, 1)
			if repeat < 1 {
				repeat = 1
			}

			ev := KeyEvent{
				Code:      CharKey(rune(uc)),
				Modifiers: decodeWin32ControlState(controlState),
				Kind:      KeyPress,
			}
			if keyDown == 0 {
				ev.Kind = KeyRelease
			} else if repeat > 1 {
				ev.Kind = KeyRepeat
			}
			if uc >= 0x20 {
				ev.Text = string(rune(uc))
			}
			return ev, true
		},
	}
	if err := registerDescriptors([]Descriptor{d}); err != nil {
		panic(err)
	}
}

// Win32 console CONTROL_KEY_STATE bits.
const (
	win32RightAlt  = 0x0001
	win32LeftAlt   = 0x0002
	win32RightCtrl = 0x0004
	win32LeftCtrl  = 0x0008
	win32Shift     = 0x0010
	win32NumLock   = 0x0020
	win32CapsLock  = 0x0080
)

func decodeWin32ControlState(cs int) Modifiers {
	var m Modifiers
	if cs&(win32LeftAlt|win32RightAlt) != 0 {
		m |= ModAlt
	}
	if cs&(win32LeftCtrl|win32RightCtrl) != 0 {
		m |= ModCtrl
	}
	if cs&win32Shift != 0 {
		m |= ModShift
	}
	if cs&win32CapsLock != 0 {
		m |= ModCapsLock
	}
	if cs&win32NumLock != 0 {
		m |= ModNumLock
	}
	return m
}
