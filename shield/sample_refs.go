package shield

// SampleRefs are refs of assorted lengths and characters, used to preview every network's badge
var SampleRefs = []string{
	"1",
	"5",
	"11",
	"81",
	"69",
	"95",
	"111",
	"281",
	"980",
	"H201",
	"480N",
	"A 562",
	"1138-2",
	"A26/A7",
}
