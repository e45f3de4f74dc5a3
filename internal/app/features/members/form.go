// internal/app/features/members/form.go
package members

import (
	"encoding/json"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/sayamjn/SHG/internal/app/system/httpapi"
	"github.com/sayamjn/SHG/internal/app/system/inputval"
	"github.com/sayamjn/SHG/internal/domain/models"
)

// maxMemberFormMemory bounds the in-memory portion of a multipart parse;
// larger file parts spill to disk.
const maxMemberFormMemory = 8 << 20

// memberForm is the decoded body of a member create or update request.
// Registration accepts either multipart/form-data (when a photo is
// attached) or plain JSON.
type memberForm struct {
	Name     string `json:"name"`
	Address  string `json:"address"`
	Age      int    `json:"age"`
	Gender   string `json:"gender"`
	Phone    string `json:"phone"`
	Country  string `json:"country"`
	State    string `json:"state"`
	City     string `json:"city"`
	District string `json:"district"`
	Taluka   string `json:"taluka"`
	Ward     string `json:"ward"`
	Aadhaar  string `json:"aadhaar"`
	Role     string `json:"role"`

	// Group carries the target group's code on registration. Updates
	// ignore it; a member's group binding never changes.
	Group string `json:"group"`

	photo *multipart.FileHeader
}

// parseMemberForm decodes the request body into a memberForm. A "body could
// not be read at all" failure returns false after writing the 400.
func parseMemberForm(w http.ResponseWriter, r *http.Request) (memberForm, bool) {
	var f memberForm

	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "multipart/form-data") {
		if err := r.ParseMultipartForm(maxMemberFormMemory); err != nil {
			httpapi.BadRequest(w, "Invalid request body")
			return f, false
		}
		f.Name = r.FormValue("name")
		f.Address = r.FormValue("address")
		f.Age, _ = strconv.Atoi(r.FormValue("age"))
		f.Gender = r.FormValue("gender")
		f.Phone = r.FormValue("phone")
		f.Country = r.FormValue("country")
		f.State = r.FormValue("state")
		f.City = r.FormValue("city")
		f.District = r.FormValue("district")
		f.Taluka = r.FormValue("taluka")
		f.Ward = r.FormValue("ward")
		f.Aadhaar = r.FormValue("aadhaar")
		f.Role = r.FormValue("role")
		f.Group = r.FormValue("group")
		if fhs := r.MultipartForm.File["photo"]; len(fhs) > 0 {
			f.photo = fhs[0]
		}
		return f, true
	}

	if err := json.NewDecoder(r.Body).Decode(&f); err != nil {
		httpapi.BadRequest(w, "Invalid request body")
		return f, false
	}
	return f, true
}

// validate checks every field and returns the full violation list.
func (f memberForm) validate() *inputval.Validator {
	v := inputval.New()
	v.Require("name", f.Name, "Please add a name")
	v.Require("address", f.Address, "Please add an address")
	if f.Age == 0 {
		v.Add("age", "Please add an age")
	} else {
		v.IntRange("age", f.Age, 18, 100, "Age must be between 18 and 100")
	}
	if f.Gender == "" {
		v.Add("gender", "Please add a gender")
	} else {
		v.OneOf("gender", f.Gender, models.Genders, "Gender must be Male, Female or Other")
	}
	v.Require("phone", f.Phone, "Please add a phone number")
	v.Require("country", f.Country, "Please add a country")
	v.Require("state", f.State, "Please add a state")
	v.Require("city", f.City, "Please add a city")
	v.Require("district", f.District, "Please add a district")
	v.Require("taluka", f.Taluka, "Please add a taluka")
	if f.Role != "" {
		v.OneOf("role", f.Role, models.MemberRoles, "Role must be member, secretary, president or treasurer")
	}
	return v
}

// apply copies the form fields onto a member record.
func (f memberForm) apply(m *models.Member) {
	m.Name = f.Name
	m.Address = f.Address
	m.Age = f.Age
	m.Gender = f.Gender
	m.Phone = f.Phone
	m.Country = f.Country
	m.State = f.State
	m.City = f.City
	m.District = f.District
	m.Taluka = f.Taluka
	m.Ward = f.Ward
	m.Aadhaar = f.Aadhaar
	if f.Role != "" {
		m.Role = f.Role
	}
}
