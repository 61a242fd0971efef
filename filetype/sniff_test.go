package filetype

import "testing"

func TestSniff(t *testing.T) {
	cases := []struct {
		name string
		data []byte
		want Result
	}{
		{"too short", []byte{0x76}, Result{Kind: KindUnknown}},
		{"vu gen1 low", []byte{0x76, 0x01}, Result{Kind: KindVehicleUnit, Generation: Generation1}},
		{"vu gen1 high", []byte{0x76, 0x05}, Result{Kind: KindVehicleUnit, Generation: Generation1}},
		{"vu gen2 low", []byte{0x76, 0x21}, Result{Kind: KindVehicleUnit, Generation: Generation2}},
		{"vu gen2 high", []byte{0x76, 0x25}, Result{Kind: KindVehicleUnit, Generation: Generation2}},
		{"vu gen2v2 low", []byte{0x76, 0x31}, Result{Kind: KindVehicleUnit, Generation: Generation2V2}},
		{"vu gen2v2 high", []byte{0x76, 0x35}, Result{Kind: KindVehicleUnit, Generation: Generation2V2}},
		{"unrecognized trep", []byte{0x76, 0x99}, Result{Kind: KindUnknown}},
		{"card gen1", []byte{0x00, 0x02, 0x00, 0x00}, Result{Kind: KindDriverCard, Generation: Generation1}},
		{
			"card gen2",
			append([]byte{0x00, 0x02}, append(make([]byte, 10), gen2Marker...)...),
			Result{Kind: KindDriverCard, Generation: Generation2},
		},
		{
			"card gen2v2",
			append([]byte{0x00, 0x02}, append(make([]byte, 10), gen2V2Marker...)...),
			Result{Kind: KindDriverCard, Generation: Generation2V2},
		},
		{"unrecognized header", []byte{0xAB, 0xCD}, Result{Kind: KindUnknown}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := Sniff(c.data)
			if got != c.want {
				t.Errorf("Sniff(%v) = %+v, want %+v", c.data, got, c.want)
			}
		})
	}
}
