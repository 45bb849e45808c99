package models

// Address is owned by a lead (step 3) or a co-applicant. IDs are generated
// client-side and only need to be unique within one list.
type Address struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Line1     string `json:"line1"`
	Line2     string `json:"line2"`
	Line3     string `json:"line3"`
	Landmark  string `json:"landmark"`
	Pincode   string `json:"pincode"`
	City      string `json:"city"`
	State     string `json:"state"`
	IsPrimary bool   `json:"isPrimary"`
}

// Address types accepted by the upstream API.
const (
	AddressTypeCurrent   = "current"
	AddressTypePermanent = "permanent"
	AddressTypeOffice    = "office"
)

// RemoveAddress returns the list without the given id. If the removed
// address was the primary one, the first remaining address is promoted so
// the list keeps exactly one primary.
func RemoveAddress(list []Address, id string) []Address {
	out := make([]Address, 0, len(list))
	removedPrimary := false
	for _, a := range list {
		if a.ID == id {
			removedPrimary = a.IsPrimary
			continue
		}
		out = append(out, a)
	}
	if removedPrimary && len(out) > 0 {
		out[0].IsPrimary = true
	}
	return out
}

// SetPrimaryAddress marks the given id primary and demotes every other
// entry. The list is returned unchanged if the id is not present.
func SetPrimaryAddress(list []Address, id string) []Address {
	found := false
	for _, a := range list {
		if a.ID == id {
			found = true
			break
		}
	}
	if !found {
		return list
	}
	out := make([]Address, len(list))
	for i, a := range list {
		a.IsPrimary = a.ID == id
		out[i] = a
	}
	return out
}

// PrimaryAddress returns the primary entry, or nil if the list is empty.
func PrimaryAddress(list []Address) *Address {
	for i := range list {
		if list[i].IsPrimary {
			return &list[i]
		}
	}
	if len(list) > 0 {
		return &list[0]
	}
	return nil
}
