package entity

// KeyboardRows is the fixed on-screen layout of the Turkish alphabet.
var KeyboardRows = [][]string{
	{"A", "B", "C", "Ç", "D", "E", "F", "G", "Ğ"},
	{"H", "I", "İ", "J", "K", "L", "M", "N", "O"},
	{"Ö", "P", "R", "S", "Ş", "T", "U", "Ü", "V", "Y", "Z"},
}

type Key struct {
	Letter  string `json:"letter"`
	Guessed bool   `json:"guessed"`
}

func IsKeyboardLetter(letter string) bool {
	for _, row := range KeyboardRows {
		for _, key := range row {
			if key == letter {
				return true
			}
		}
	}

	return false
}

// Keyboard - the layout with every key marked by whether it was already pressed this round.
func Keyboard(round *Round) [][]Key {
	rows := make([][]Key, len(KeyboardRows))

	for i, row := range KeyboardRows {
		rows[i] = make([]Key, len(row))
		for j, letter := range row {
			rows[i][j] = Key{
				Letter:  letter,
				Guessed: round != nil && round.HasGuessed(letter),
			}
		}
	}

	return rows
}
