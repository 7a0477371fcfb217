package models

import "strconv"

// Reference sheets store their wire field names as headers, so rows map to
// these structs one to one.

// Aircraft is a fleet aircraft selectable on the entry form.
type Aircraft struct {
	ID           string `json:"id"`
	AircraftType string `json:"aircraftType"`
	TailNumber   string `json:"tailNumber"`
	Company      string `json:"company,omitempty"`
	CallSign     string `json:"callSign,omitempty"`
}

// Tanker is a fuel tanker vehicle.
type Tanker struct {
	ID       string `json:"id"`
	Plate    string `json:"plate"`
	Region   string `json:"region"`
	Company  string `json:"company,omitempty"`
	Capacity int    `json:"capacity"`
}

// Airport is a refueling location. Type is either "Sivil" or "Askeri";
// military airports force card-number entry on the form.
type Airport struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// AirportTypeMilitary marks airports that require a card number on aircraft
// refuel records.
const AirportTypeMilitary = "Askeri"

// Personnel is a roster member who can be picked as the refueling person.
type Personnel struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Job  string `json:"job"`
}

// AdminUser is a row of the admin credentials sheet. Password holds either a
// bcrypt hash or, for rows predating hashing, the plaintext secret.
type AdminUser struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Password string `json:"-"`
}

func (a Aircraft) ToSheetRow() map[string]string {
	return map[string]string{
		"id": a.ID, "aircraftType": a.AircraftType, "tailNumber": a.TailNumber,
		"company": a.Company, "callSign": a.CallSign,
	}
}

func AircraftFromSheetRow(row map[string]string) Aircraft {
	return Aircraft{
		ID:           row["id"],
		AircraftType: row["aircraftType"],
		TailNumber:   row["tailNumber"],
		Company:      row["company"],
		CallSign:     row["callSign"],
	}
}

func (t Tanker) ToSheetRow() map[string]string {
	return map[string]string{
		"id": t.ID, "plate": t.Plate, "region": t.Region,
		"company": t.Company, "capacity": strconv.Itoa(t.Capacity),
	}
}

func TankerFromSheetRow(row map[string]string) Tanker {
	capacity, _ := strconv.Atoi(row["capacity"])
	return Tanker{
		ID:       row["id"],
		Plate:    row["plate"],
		Region:   row["region"],
		Company:  row["company"],
		Capacity: capacity,
	}
}

func (a Airport) ToSheetRow() map[string]string {
	return map[string]string{"id": a.ID, "name": a.Name, "type": a.Type}
}

func AirportFromSheetRow(row map[string]string) Airport {
	return Airport{ID: row["id"], Name: row["name"], Type: row["type"]}
}

func (p Personnel) ToSheetRow() map[string]string {
	return map[string]string{"id": p.ID, "name": p.Name, "job": p.Job}
}

func PersonnelFromSheetRow(row map[string]string) Personnel {
	return Personnel{ID: row["id"], Name: row["name"], Job: row["job"]}
}

func AdminFromSheetRow(row map[string]string) AdminUser {
	return AdminUser{
		ID:       row["id"],
		Name:     row["name"],
		Username: row["username"],
		Password: row["password"],
	}
}

func AircraftColumns() []string {
	return []string{"id", "aircraftType", "tailNumber", "company", "callSign"}
}

func TankerColumns() []string {
	return []string{"id", "plate", "region", "company", "capacity"}
}

func AirportColumns() []string { return []string{"id", "name", "type"} }

func PersonnelColumns() []string { return []string{"id", "name", "job"} }

func AdminColumns() []string { return []string{"id", "name", "username", "password"} }
