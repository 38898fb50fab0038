package service

import (
	"errors"
	"math"

	"github.com/fitturk/backend/internal/types"
)

var errIncompleteMetrics = errors.New("height and weight must be positive")

var activityMultipliers = map[string]float64{
	"sedentary":   1.2,
	"light":       1.375,
	"moderate":    1.55,
	"active":      1.725,
	"very_active": 1.9,
}

// CalculateBMI expects height in centimeters and weight in kilograms and
// rounds to one decimal.
func CalculateBMI(heightCm, weightKg float64) (float64, error) {
	if heightCm <= 0 || weightKg <= 0 {
		return 0, errIncompleteMetrics
	}
	h := heightCm / 100.0
	return math.Round(weightKg/(h*h)*10) / 10, nil
}

func BMICategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return "underweight"
	case bmi < 25.0:
		return "normal"
	case bmi < 30.0:
		return "overweight"
	default:
		return "obese"
	}
}

// CalculateBMR uses the revised Harris-Benedict equation. Any gender other
// than male uses the female coefficients.
func CalculateBMR(info types.PersonalInfo) (float64, error) {
	if info.Height <= 0 || info.Weight <= 0 || info.Age <= 0 {
		return 0, errIncompleteMetrics
	}
	if info.Gender == "male" {
		return 88.362 + 13.397*info.Weight + 4.799*info.Height - 5.677*float64(info.Age), nil
	}
	return 447.593 + 9.247*info.Weight + 3.098*info.Height - 4.330*float64(info.Age), nil
}

// ComputeMetrics derives whatever the profile has enough data for.
func ComputeMetrics(info types.PersonalInfo) types.HealthMetrics {
	var m types.HealthMetrics

	bmi, err := CalculateBMI(info.Height, info.Weight)
	if err != nil {
		return m
	}
	m.BMI = bmi
	m.BMICategory = BMICategory(bmi)

	bmr, err := CalculateBMR(info)
	if err != nil {
		return m
	}
	m.BMR = int(math.Round(bmr))

	if multiplier, ok := activityMultipliers[info.ActivityLevel]; ok {
		m.TDEE = int(math.Round(bmr * multiplier))
	}
	return m
}
