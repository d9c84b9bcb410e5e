package clinicdata

import (
	"fmt"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"
)

// SeedOptions controls demo dataset generation
type SeedOptions struct {
	// Seed fixes the random stream so repeated runs produce the same
	// dataset. Zero means seed 1.
	Seed int64

	// PatientCount limits how many of the demo patients are loaded.
	// Zero or out-of-range values load the full roster.
	PatientCount int

	// Now anchors relative dates (slot calendar, policy expirations).
	// Zero means time.Now().
	Now time.Time
}

type seedPatient struct {
	name string
	dob  string
	mrn  string
}

var seedPatients = []seedPatient{
	{"Ravi Kumar", "1985-03-15", "MRN-001"},
	{"Priya Sharma", "1990-07-22", "MRN-002"},
	{"Amit Patel", "1978-11-08", "MRN-003"},
	{"Sunita Reddy", "1988-05-12", "MRN-004"},
	{"Rajesh Verma", "1982-09-25", "MRN-005"},
	{"Anjali Mehta", "1992-02-18", "MRN-006"},
	{"Vikram Singh", "1987-08-30", "MRN-007"},
	{"Kavita Nair", "1991-12-05", "MRN-008"},
	{"Deepak Joshi", "1984-04-22", "MRN-009"},
	{"Meera Desai", "1989-06-14", "MRN-010"},
	{"Arjun Iyer", "1986-10-03", "MRN-011"},
	{"Sneha Gupta", "1993-01-28", "MRN-012"},
	{"Rohan Kapoor", "1983-07-19", "MRN-013"},
	{"Neha Malhotra", "1990-11-07", "MRN-014"},
	{"Siddharth Rao", "1985-09-15", "MRN-015"},
	{"Divya Chawla", "1992-03-21", "MRN-016"},
	{"Karan Sharma", "1988-12-09", "MRN-017"},
	{"Pooja Agarwal", "1991-05-26", "MRN-018"},
	{"Rahul Nair", "1987-02-13", "MRN-019"},
	{"Anita Krishnan", "1989-08-04", "MRN-020"},
	{"Varun Menon", "1986-04-17", "MRN-021"},
	{"Shreya Pillai", "1993-10-29", "MRN-022"},
	{"Aryan Bhatt", "1984-01-11", "MRN-023"},
	{"Isha Patel", "1990-06-23", "MRN-024"},
	{"Aditya Khanna", "1988-11-16", "MRN-025"},
	{"Riya Sen", "1992-07-08", "MRN-026"},
	{"Nikhil Das", "1987-03-02", "MRN-027"},
	{"Sanya Kohli", "1991-09-20", "MRN-028"},
	{"Kunal Shah", "1985-12-31", "MRN-029"},
	{"Tanya Oberoi", "1989-05-14", "MRN-030"},
	{"Rohit Yadav", "1986-08-27", "MRN-031"},
	{"Aisha Khan", "1993-02-09", "MRN-032"},
	{"Manish Tiwari", "1988-10-18", "MRN-033"},
	{"Kritika Bansal", "1990-04-05", "MRN-034"},
	{"Vivek Pandey", "1987-01-24", "MRN-035"},
}

type seedCity struct {
	city      string
	state     string
	phoneBase int64
}

var seedCities = []seedCity{
	{"Bangalore", "Karnataka", 9876543210},
	{"Mumbai", "Maharashtra", 9876543211},
	{"Delhi", "NCR", 9876543212},
	{"Chennai", "Tamil Nadu", 9876543213},
	{"Hyderabad", "Telangana", 9876543214},
	{"Pune", "Maharashtra", 9876543215},
	{"Kolkata", "West Bengal", 9876543216},
	{"Ahmedabad", "Gujarat", 9876543217},
}

var seedInsuranceProviders = []string{
	"MediCare Insurance",
	"Health Shield",
	"WellCare Plus",
	"Prime Health Insurance",
	"Global Medical Coverage",
	"SecureHealth",
	"LifeCare Insurance",
}

var seedCoverageTypes = []string{"Comprehensive", "Standard", "Premium", "Basic"}

var seedCopayByCoverage = map[string]int{
	"Premium":       300,
	"Comprehensive": 500,
	"Standard":      750,
	"Basic":         1000,
}

type specialtyConfig struct {
	name      string
	doctors   []string
	duration  int
	slotCount int
}

// Ordered so slot IDs come out the same for a given seed.
var seedSpecialties = []specialtyConfig{
	{"Cardiology", []string{"Dr. Anil Reddy", "Dr. Meera Singh", "Dr. Karthik Nair"}, 30, 25},
	{"Neurology", []string{"Dr. Rajesh Kumar", "Dr. Priya Sharma", "Dr. Sanjay Verma"}, 45, 20},
	{"General Medicine", []string{"Dr. Sunita Devi", "Dr. Ramesh Iyer", "Dr. Lakshmi Menon"}, 20, 30},
	{"Orthopedics", []string{"Dr. Vikram Patel", "Dr. Anjali Desai"}, 30, 18},
	{"Dermatology", []string{"Dr. Sneha Reddy", "Dr. Arjun Mehta"}, 25, 15},
	{"Pediatrics", []string{"Dr. Kavita Nair", "Dr. Rohit Joshi"}, 30, 20},
}

// Seed loads the demo dataset: a fixed patient roster with generated
// insurance records, and a four-week slot calendar that skips weekends.
// Slot counts per specialty land near the configured target; a day's
// batch may push slightly past it before generation stops.
func Seed(store *Store, opts SeedOptions) error {
	seed := opts.Seed
	if seed == 0 {
		seed = 1
	}
	gofakeit.Seed(seed)

	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	count := opts.PatientCount
	if count <= 0 || count > len(seedPatients) {
		count = len(seedPatients)
	}

	patients := make([]Patient, 0, count)
	for i := 0; i < count; i++ {
		sp := seedPatients[i]
		city := seedCities[i%len(seedCities)]
		p := Patient{
			ID:                  fmt.Sprintf("PAT%03d", i+1),
			Name:                sp.name,
			DateOfBirth:         sp.dob,
			Phone:               fmt.Sprintf("+91-%d", city.phoneBase+int64(i)),
			Email:               strings.ReplaceAll(strings.ToLower(sp.name), " ", ".") + "@example.com",
			Address:             fmt.Sprintf("%d Medical Street, %s, %s", 100+i, city.city, city.state),
			MedicalRecordNumber: sp.mrn,
		}
		if err := store.AddPatient(p); err != nil {
			return err
		}
		patients = append(patients, p)
	}

	for _, p := range patients {
		coverage := seedCoverageTypes[gofakeit.Number(0, len(seedCoverageTypes)-1)]
		store.SetInsurance(InsuranceRecord{
			PatientID:         p.ID,
			Provider:          seedInsuranceProviders[gofakeit.Number(0, len(seedInsuranceProviders)-1)],
			PolicyNumber:      fmt.Sprintf("POL-%d", gofakeit.Number(100000, 999999)),
			CoverageType:      coverage,
			EligibilityStatus: "Active",
			Copay:             seedCopayByCoverage[coverage],
			ValidUntil:        now.AddDate(0, 0, gofakeit.Number(365, 1095)).Format("2006-01-02"),
		})
	}

	slotID := 1
	morningHours := []int{9, 10, 11}
	afternoonHours := []int{14, 15, 16}
	minutes := []int{0, 30}

	for _, cfg := range seedSpecialties {
		created := 0
		for dayOffset := 1; dayOffset <= 28; dayOffset++ {
			day := now.AddDate(0, 0, dayOffset)
			if wd := day.Weekday(); wd == time.Saturday || wd == time.Sunday {
				continue
			}

			slotsPerDoctor := gofakeit.Number(1, 2)
			for _, doctor := range cfg.doctors {
				for slotNum := 0; slotNum < slotsPerDoctor; slotNum++ {
					hours := morningHours
					if slotNum > 0 {
						hours = afternoonHours
					}
					hour := hours[gofakeit.Number(0, len(hours)-1)]
					minute := minutes[gofakeit.Number(0, len(minutes)-1)]

					store.AddSlot(Slot{
						ID:              fmt.Sprintf("SLOT-%04d", slotID),
						Specialty:       cfg.name,
						Date:            day.Format("2006-01-02"),
						Time:            fmt.Sprintf("%02d:%02d", hour, minute),
						Doctor:          doctor,
						DurationMinutes: cfg.duration,
					})
					slotID++
					created++

					if created >= cfg.slotCount {
						break
					}
				}
				if created >= cfg.slotCount {
					break
				}
			}
		}
	}

	return nil
}
