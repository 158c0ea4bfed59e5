package models

// DrivingLicense holds the uploaded licence image URLs.
type DrivingLicense struct {
	FrontImage string `json:"frontImage"`
	BackImage  string `json:"backImage"`
}

// Driver mirrors the backend's driver profile document.
type Driver struct {
	ID                string         `json:"_id"`
	User              UserRef        `json:"userId"`
	Age               int            `json:"age"`
	Address           string         `json:"address"`
	DailyRate         float64        `json:"dailyRate"`
	YearsOfExperience int            `json:"yearsOfExperience"`
	Status            string         `json:"status"`
	DrivingLicense    DrivingLicense `json:"drivingLicense"`
}

// DriverApplication is the admin form for registering a driver. The licence
// images travel as multipart files alongside these fields.
type DriverApplication struct {
	Name              string
	Email             string
	Phone             string
	Password          string
	Age               int
	Address           string
	DailyRate         float64
	YearsOfExperience int
}
