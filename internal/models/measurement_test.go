package models

import "testing"

func TestDecodeMeasurementValue(t *testing.T) {
	cases := []struct {
		name    string
		typ     string
		raw     string
		want    MeasurementValue
		wantErr bool
	}{
		{"period", MeasurementPeriod, `{"option":"medium"}`, FlowValue{Option: FlowMedium}, false},
		{"period none", MeasurementPeriod, `{"option":"none"}`, FlowValue{Option: FlowNone}, false},
		{"period invalid option", MeasurementPeriod, `{"option":"torrential"}`, nil, true},
		{"period missing option", MeasurementPeriod, `{}`, nil, true},
		{"bbt", MeasurementBbt, `{"temperature":36.55}`, TemperatureValue{Temperature: 36.55}, false},
		{"bbt missing temperature", MeasurementBbt, `{}`, nil, true},
		{"cramps", MeasurementCramps, `{"severity":"moderate"}`, SeverityValue{Severity: SeverityModerate}, false},
		{"sore breasts", MeasurementSoreBreasts, `{"severity":"mild"}`, SeverityValue{Severity: SeverityMild}, false},
		{"severity invalid", MeasurementCramps, `{"severity":"unbearable"}`, nil, true},
		{"lh surge status", MeasurementLhSurge, `{"status":"positive"}`, SurgeValue{Status: SurgePositive}, false},
		{"lh surge invalid status", MeasurementLhSurge, `{"status":"maybe"}`, nil, true},
		{"unknown type", "mood", `{"option":"happy"}`, nil, true},
		{"malformed json", MeasurementPeriod, `{`, nil, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := DecodeMeasurementValue(tc.typ, []byte(tc.raw))
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected an error, got %#v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("got %#v, want %#v", got, tc.want)
			}
		})
	}
}

func TestDecodeLegacySurgeBoolean(t *testing.T) {
	got, err := DecodeMeasurementValue(MeasurementLhSurge, []byte(`{"detected":true}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != (SurgeValue{Status: SurgePositive}) {
		t.Fatalf("detected=true must map to positive, got %#v", got)
	}

	got, err = DecodeMeasurementValue(MeasurementLhSurge, []byte(`{"detected":false}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != (SurgeValue{Status: SurgeNegative}) {
		t.Fatalf("detected=false must map to negative, got %#v", got)
	}

	// An explicit status wins over the legacy flag.
	got, err = DecodeMeasurementValue(MeasurementLhSurge, []byte(`{"status":"not_tested","detected":true}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != (SurgeValue{Status: SurgeNotTested}) {
		t.Fatalf("explicit status must win, got %#v", got)
	}
}

func TestEncodeMeasurementValueCanonical(t *testing.T) {
	encoded, err := EncodeMeasurementValue(SurgeValue{Status: SurgePositive})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if encoded != `{"status":"positive"}` {
		t.Fatalf("unexpected encoding: %s", encoded)
	}

	encoded, err = EncodeMeasurementValue(FlowValue{Option: FlowLight})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if encoded != `{"option":"light"}` {
		t.Fatalf("unexpected encoding: %s", encoded)
	}

	if _, err := EncodeMeasurementValue(nil); err == nil {
		t.Fatal("expected an error for a nil value")
	}
}

func TestMeasurementAccessors(t *testing.T) {
	period := Measurement{Type: MeasurementPeriod, Value: FlowValue{Option: FlowHeavy}}
	option, ok := period.FlowOption()
	if !ok || option != FlowHeavy {
		t.Fatalf("FlowOption = %q, %v", option, ok)
	}

	bbt := Measurement{Type: MeasurementBbt, Value: TemperatureValue{Temperature: 36.4}}
	if _, ok := bbt.FlowOption(); ok {
		t.Fatal("FlowOption must refuse non-period measurements")
	}
	temperature, ok := bbt.Temperature()
	if !ok || temperature != 36.4 {
		t.Fatalf("Temperature = %v, %v", temperature, ok)
	}
	if _, ok := period.Temperature(); ok {
		t.Fatal("Temperature must refuse non-bbt measurements")
	}
}
