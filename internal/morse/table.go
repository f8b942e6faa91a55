// internal/morse/table.go
package morse

// codeTable maps international morse runs to characters.
var codeTable = map[string]byte{
	".-":   'A',
	"-...": 'B',
	"-.-.": 'C',
	"-..":  'D',
	".":    'E',
	"..-.": 'F',
	"--.":  'G',
	"....": 'H',
	"..":   'I',
	".---": 'J',
	"-.-":  'K',
	".-..": 'L',
	"--":   'M',
	"-.":   'N',
	"---":  'O',
	".--.": 'P',
	"--.-": 'Q',
	".-.":  'R',
	"...":  'S',
	"-":    'T',
	"..-":  'U',
	"...-": 'V',
	".--":  'W',
	"-..-": 'X',
	"-.--": 'Y',
	"--..": 'Z',

	"-----": '0',
	".----": '1',
	"..---": '2',
	"...--": '3',
	"....-": '4',
	".....": '5',
	"-....": '6',
	"--...": '7',
	"---..": '8',
	"----.": '9',

	".-.-.-": '.',
	"--..--": ',',
	"..--..": '?',
	"-..-.":  '/',
	"-...-":  '=',
	".-.-.":  '+',
	"-....-": '-',
	".--.-.": '@',
	"---...": ':',
	".----.": '\'',
	"-.-.--": '!',
	"-.--.":  '(',
	"-.--.-": ')',
}

// charFor translates a run, or '#' when it matches nothing.
func charFor(code string) byte {
	if ch, ok := codeTable[code]; ok {
		return ch
	}
	return '#'
}
