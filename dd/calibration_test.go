package dd

import (
	"testing"

	"github.com/tachoscan/tachodecode/byteio"
)

func TestDecodeSensorPaired(t *testing.T) {
	data := make([]byte, 8+8+4) // ExtendedSerialNumber + SensorApprovalNumber + TimeReal
	data[8] = 'A'               // approval number first byte, rest zero-padded IA5
	r := byteio.New(data)

	sensor, err := DecodeSensorPaired(r)
	if err != nil {
		t.Fatalf("DecodeSensorPaired() error = %v", err)
	}
	if sensor.SensorApprovalNumber == "" {
		t.Fatalf("SensorApprovalNumber decoded empty")
	}
	if !sensor.SensorPairingDateFirst.IsZero() {
		t.Fatalf("SensorPairingDateFirst = %v, want zero (all-zero TimeReal)", sensor.SensorPairingDateFirst)
	}
}

func TestDecodeVuCalibrationData_ZeroRecords(t *testing.T) {
	r := byteio.New([]byte{0x00})

	data, err := DecodeVuCalibrationData(r)
	if err != nil {
		t.Fatalf("DecodeVuCalibrationData() error = %v", err)
	}
	if data.NoOfVuCalibrationRecords != 0 {
		t.Fatalf("NoOfVuCalibrationRecords = %d, want 0", data.NoOfVuCalibrationRecords)
	}
	if len(data.VuCalibrationRecords) != 0 {
		t.Fatalf("len(VuCalibrationRecords) = %d, want 0", len(data.VuCalibrationRecords))
	}
}
