package lineclass

// Kind identifies what a classified line means to the record assembler.
type Kind int

const (
	KindContinuation Kind = iota
	KindHeader
	KindRecordStart
	KindChoice
	KindDelimiter
	KindModeSwitch
)

var kindNames = map[Kind]string{
	KindContinuation: "CONTINUATION",
	KindHeader:       "HEADER",
	KindRecordStart:  "QSTART",
	KindChoice:       "CHOICE",
	KindDelimiter:    "DELIM",
	KindModeSwitch:   "MODE_SWITCH",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "UNKNOWN"
}

// Token is the result of classifying one line. Only the fields relevant to
// Kind are set.
type Token struct {
	Kind Kind

	// Line is the trimmed source line.
	Line string

	// Header fields.
	Prefix string
	Label  string

	// Record-start fields. Prompt is the initial prompt text, Answer the
	// inline answer code when the header carries one.
	ID     string
	Prompt string
	Answer string

	// Choice fields. Text is the full line, label marker included.
	Choice string

	// Text carries the line for choices and continuations.
	Text string
}
