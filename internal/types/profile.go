package types

// PersonalInfo uses metric units: height in centimetres, weight in kilograms.
type PersonalInfo struct {
	Name          string  `json:"name" binding:"max=100"`
	Age           int     `json:"age" binding:"gte=0,lte=130"`
	Gender        string  `json:"gender" binding:"omitempty,oneof=male female other"`
	Height        float64 `json:"height" binding:"gte=0,lte=300"`
	Weight        float64 `json:"weight" binding:"gte=0,lte=500"`
	ActivityLevel string  `json:"activityLevel" binding:"omitempty,oneof=sedentary light moderate active very_active"`
}

type HealthInfo struct {
	Allergies   []string `json:"allergies" binding:"max=50,dive,max=100"`
	Conditions  []string `json:"conditions" binding:"max=50,dive,max=100"`
	Medications []string `json:"medications" binding:"max=50,dive,max=100"`
	BloodType   string   `json:"bloodType" binding:"omitempty,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
}

type Preferences struct {
	DietaryRestrictions []string `json:"dietaryRestrictions" binding:"max=50,dive,max=100"`
	FitnessGoals        []string `json:"fitnessGoals" binding:"max=50,dive,max=100"`
	MealPreferences     []string `json:"mealPreferences" binding:"max=50,dive,max=100"`
	WorkoutPreferences  []string `json:"workoutPreferences" binding:"max=50,dive,max=100"`
}

// Profile is the encrypted per-user document.
type Profile struct {
	PersonalInfo PersonalInfo `json:"personalInfo"`
	HealthInfo   HealthInfo   `json:"healthInfo"`
	Preferences  Preferences  `json:"preferences"`
}

// UpdateProfileRequest replaces each section that is present.
type UpdateProfileRequest struct {
	PersonalInfo *PersonalInfo `json:"personalInfo"`
	HealthInfo   *HealthInfo   `json:"healthInfo"`
	Preferences  *Preferences  `json:"preferences"`
}

// HealthMetrics are derived from PersonalInfo. Zero values mean the inputs
// were incomplete.
type HealthMetrics struct {
	BMI         float64 `json:"bmi"`
	BMICategory string  `json:"bmiCategory,omitempty"`
	BMR         int     `json:"bmr"`
	TDEE        int     `json:"tdee"`
}

type ProfileResponse struct {
	Profile Profile       `json:"profile"`
	Metrics HealthMetrics `json:"metrics"`
}
