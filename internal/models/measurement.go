package models

import (
	"encoding/json"
	"fmt"
	"time"
)

const (
	MeasurementPeriod      = "period"
	MeasurementBbt         = "bbt"
	MeasurementCramps      = "cramps"
	MeasurementSoreBreasts = "sore_breasts"
	MeasurementLhSurge     = "lh_surge"
)

const (
	FlowNone     = "none"
	FlowSpotting = "spotting"
	FlowLight    = "light"
	FlowMedium   = "medium"
	FlowHeavy    = "heavy"
)

const (
	SeverityNone     = "none"
	SeverityMild     = "mild"
	SeverityModerate = "moderate"
	SeveritySevere   = "severe"
)

const (
	SurgeNotTested = "not_tested"
	SurgeNegative  = "negative"
	SurgePositive  = "positive"
)

// Measurement is one logged data point for one calendar day. The raw
// value column holds the JSON payload; Value carries the decoded form
// and is populated by the repository on every read.
type Measurement struct {
	ID        string           `gorm:"primaryKey"`
	UserID    uint             `gorm:"not null;index:idx_measurements_user_date"`
	Date      time.Time        `gorm:"type:date;not null;index:idx_measurements_user_date"`
	Type      string           `gorm:"not null"`
	RawValue  string           `gorm:"column:value;not null"`
	Value     MeasurementValue `gorm:"-"`
	CreatedAt time.Time        `gorm:"not null"`
}

// MeasurementValue is the tagged union behind Measurement.Type: one
// concrete shape per measurement type.
type MeasurementValue interface {
	measurementValue()
}

type FlowValue struct {
	Option string `json:"option"`
}

type TemperatureValue struct {
	Temperature float64 `json:"temperature"`
}

type SeverityValue struct {
	Severity string `json:"severity"`
}

type SurgeValue struct {
	Status string `json:"status"`
}

func (FlowValue) measurementValue()        {}
func (TemperatureValue) measurementValue() {}
func (SeverityValue) measurementValue()    {}
func (SurgeValue) measurementValue()       {}

// surgePayload also accepts the legacy boolean shape written by early
// exports, where a "detected" flag stood in for the status enum.
type surgePayload struct {
	Status   string `json:"status"`
	Detected *bool  `json:"detected"`
}

// DecodeMeasurementValue turns a raw JSON payload into the concrete
// value shape for the given measurement type. Legacy shapes are
// normalized here so nothing downstream ever sees them.
func DecodeMeasurementValue(measurementType string, raw []byte) (MeasurementValue, error) {
	switch measurementType {
	case MeasurementPeriod:
		value := FlowValue{}
		if err := json.Unmarshal(raw, &value); err != nil {
			return nil, fmt.Errorf("decode period value: %w", err)
		}
		if !IsValidFlowOption(value.Option) {
			return nil, fmt.Errorf("invalid flow option %q", value.Option)
		}
		return value, nil
	case MeasurementBbt:
		value := TemperatureValue{}
		if err := json.Unmarshal(raw, &value); err != nil {
			return nil, fmt.Errorf("decode bbt value: %w", err)
		}
		if value.Temperature == 0 {
			return nil, fmt.Errorf("missing bbt temperature")
		}
		return value, nil
	case MeasurementCramps, MeasurementSoreBreasts:
		value := SeverityValue{}
		if err := json.Unmarshal(raw, &value); err != nil {
			return nil, fmt.Errorf("decode severity value: %w", err)
		}
		if !IsValidSeverity(value.Severity) {
			return nil, fmt.Errorf("invalid severity %q", value.Severity)
		}
		return value, nil
	case MeasurementLhSurge:
		payload := surgePayload{}
		if err := json.Unmarshal(raw, &payload); err != nil {
			return nil, fmt.Errorf("decode lh_surge value: %w", err)
		}
		status := payload.Status
		if status == "" && payload.Detected != nil {
			status = SurgeNegative
			if *payload.Detected {
				status = SurgePositive
			}
		}
		if !IsValidSurgeStatus(status) {
			return nil, fmt.Errorf("invalid lh_surge status %q", status)
		}
		return SurgeValue{Status: status}, nil
	default:
		return nil, fmt.Errorf("unknown measurement type %q", measurementType)
	}
}

// EncodeMeasurementValue renders the canonical JSON payload for a
// decoded value. Legacy shapes are never written back.
func EncodeMeasurementValue(value MeasurementValue) (string, error) {
	if value == nil {
		return "", fmt.Errorf("missing measurement value")
	}
	encoded, err := json.Marshal(value)
	if err != nil {
		return "", fmt.Errorf("encode measurement value: %w", err)
	}
	return string(encoded), nil
}

func IsValidMeasurementType(measurementType string) bool {
	switch measurementType {
	case MeasurementPeriod, MeasurementBbt, MeasurementCramps, MeasurementSoreBreasts, MeasurementLhSurge:
		return true
	}
	return false
}

func IsValidFlowOption(option string) bool {
	switch option {
	case FlowNone, FlowSpotting, FlowLight, FlowMedium, FlowHeavy:
		return true
	}
	return false
}

func IsValidSeverity(severity string) bool {
	switch severity {
	case SeverityNone, SeverityMild, SeverityModerate, SeveritySevere:
		return true
	}
	return false
}

func IsValidSurgeStatus(status string) bool {
	switch status {
	case SurgeNotTested, SurgeNegative, SurgePositive:
		return true
	}
	return false
}

// FlowOption returns the decoded flow option for period measurements.
func (m Measurement) FlowOption() (string, bool) {
	if m.Type != MeasurementPeriod {
		return "", false
	}
	value, ok := m.Value.(FlowValue)
	if !ok {
		return "", false
	}
	return value.Option, true
}

// Temperature returns the decoded reading for bbt measurements.
func (m Measurement) Temperature() (float64, bool) {
	if m.Type != MeasurementBbt {
		return 0, false
	}
	value, ok := m.Value.(TemperatureValue)
	if !ok {
		return 0, false
	}
	return value.Temperature, true
}
