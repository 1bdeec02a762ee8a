package fuzztests

import "testing"

const maxFuzzInput = 16 << 10

var seedPrograms = []string{
	"",
	"yield",
	"start:\nl r0 d0 Temperature\nbgt r0 300 start\nj start\n",
	"define MAX $FF\nalias sensor d1\nmove r0 MAX # max\n",
	`lb r0 HASH("StructureBattery") Charge Sum` + "\n",
	`s d0 Setting HASH("Struct`,
	"l r0 d0:1 Setting\nsb -851746783 On 1\n",
	"label main r0\nj 5\nbeq r0 r1 3\n",
	"move r0 :\n5 r0\nfoo bar\n",
	"\r\n\r\n\xef\xbb\xbfyield\r\n",
	"lr r0 d0 Contents 0b1010\nmove r1 %1010\nmove r2 1.5e3\n",
	"alias x dr0\nalias y rr1\nmove ra sp\n",
	"\tmove r0 1\t# tab\n日本 r0\n",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range seedPrograms {
		f.Add([]byte(s))
	}
}

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		input = input[:maxFuzzInput]
	}
	return append([]byte(nil), input...)
}
