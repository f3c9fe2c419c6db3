package validation

// RegisterRequest is the body of a registration call.
type RegisterRequest struct {
	Email      string `json:"email" jsonschema:"format=email,minLength=3,maxLength=40"`
	Password   string `json:"password" jsonschema:"minLength=6,maxLength=26"`
	Name       string `json:"name" jsonschema:"minLength=1,maxLength=100"`
	Mobile     string `json:"mobile,omitempty" jsonschema:"maxLength=32"`
	Address    string `json:"address,omitempty" jsonschema:"maxLength=200"`
	Gender     string `json:"gender,omitempty" jsonschema:"maxLength=32"`
	ProfilePic string `json:"profilePic,omitempty" jsonschema:"maxLength=2048"`
}

// LoginRequest is the body of a login call.
type LoginRequest struct {
	Email    string `json:"email" jsonschema:"format=email,minLength=3,maxLength=40"`
	Password string `json:"password" jsonschema:"minLength=6,maxLength=26"`
}

// EditAccountRequest replaces the profile of the caller's own account.
// Email may be echoed back but cannot change.
type EditAccountRequest struct {
	ID         string `json:"id" jsonschema:"format=uuid"`
	Email      string `json:"email,omitempty" jsonschema:"format=email,maxLength=40"`
	Name       string `json:"name" jsonschema:"minLength=1,maxLength=100"`
	Mobile     string `json:"mobile,omitempty" jsonschema:"maxLength=32"`
	Address    string `json:"address,omitempty" jsonschema:"maxLength=200"`
	Gender     string `json:"gender,omitempty" jsonschema:"maxLength=32"`
	ProfilePic string `json:"profilePic,omitempty" jsonschema:"maxLength=2048"`
}

// Location is a latitude and longitude pair.
type Location struct {
	Lat float64 `json:"lat" jsonschema:"minimum=-90,maximum=90"`
	Lng float64 `json:"lng" jsonschema:"minimum=-180,maximum=180"`
}

// CreateSalonRequest is the body of a salon creation call. OwnerID is
// optional and, when present, must name the caller.
type CreateSalonRequest struct {
	OwnerID  string   `json:"ownerId,omitempty"`
	Name     string   `json:"name" jsonschema:"minLength=1,maxLength=100"`
	Address  Location `json:"address"`
	Services []string `json:"services" jsonschema:"minItems=1"`
	Pictures []string `json:"pictures" jsonschema:"minItems=1"`
}

// EditSalonRequest replaces a salon. Version enables optimistic concurrency
// when present.
type EditSalonRequest struct {
	ID       string   `json:"id" jsonschema:"format=uuid"`
	OwnerID  string   `json:"ownerId,omitempty"`
	Name     string   `json:"name" jsonschema:"minLength=1,maxLength=100"`
	Address  Location `json:"address"`
	Services []string `json:"services" jsonschema:"minItems=1"`
	Pictures []string `json:"pictures" jsonschema:"minItems=1"`
	Version  *int64   `json:"version,omitempty" jsonschema:"minimum=1"`
}

// DeleteSalonRequest names the salon to delete.
type DeleteSalonRequest struct {
	ID      string `json:"id" jsonschema:"format=uuid"`
	OwnerID string `json:"ownerId,omitempty"`
}

// Target is the part of a mutation body needed to find the resource before
// the caller is authorized.
type Target struct {
	ID      string `json:"id"`
	OwnerID string `json:"ownerId"`
}
