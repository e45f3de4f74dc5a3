// internal/app/features/schemes/form.go
package schemes

import (
	"encoding/json"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/sayamjn/SHG/internal/app/system/htmlsanitize"
	"github.com/sayamjn/SHG/internal/app/system/httpapi"
	"github.com/sayamjn/SHG/internal/app/system/inputval"
	"github.com/sayamjn/SHG/internal/domain/models"
)

const maxSchemeFormMemory = 16 << 20

// schemeForm is the decoded body of a scheme create or update request.
// Accepts multipart/form-data when documents are attached, plain JSON
// otherwise.
type schemeForm struct {
	Title              string `json:"title"`
	Description        string `json:"description"`
	Department         string `json:"department"`
	Eligibility        string `json:"eligibility"`
	Benefits           string `json:"benefits"`
	ApplicationProcess string `json:"applicationProcess"`
	ContactInfo        string `json:"contactInfo"`
	Website            string `json:"website"`
	Tags               string `json:"tags"`

	documents []*multipart.FileHeader
}

func parseSchemeForm(w http.ResponseWriter, r *http.Request) (schemeForm, bool) {
	var f schemeForm

	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "multipart/form-data") {
		if err := r.ParseMultipartForm(maxSchemeFormMemory); err != nil {
			httpapi.BadRequest(w, "Invalid request body")
			return f, false
		}
		f.Title = r.FormValue("title")
		f.Description = r.FormValue("description")
		f.Department = r.FormValue("department")
		f.Eligibility = r.FormValue("eligibility")
		f.Benefits = r.FormValue("benefits")
		f.ApplicationProcess = r.FormValue("applicationProcess")
		f.ContactInfo = r.FormValue("contactInfo")
		f.Website = r.FormValue("website")
		f.Tags = r.FormValue("tags")
		f.documents = r.MultipartForm.File["documents"]
		return f, true
	}

	if err := json.NewDecoder(r.Body).Decode(&f); err != nil {
		httpapi.BadRequest(w, "Invalid request body")
		return f, false
	}
	return f, true
}

// sanitize strips markup from every free-text field. Scheme content is
// rendered to the public, so stored text is always plain.
func (f *schemeForm) sanitize() {
	f.Title = htmlsanitize.StripTags(f.Title)
	f.Description = htmlsanitize.StripTags(f.Description)
	f.Eligibility = htmlsanitize.StripTags(f.Eligibility)
	f.Benefits = htmlsanitize.StripTags(f.Benefits)
	f.ApplicationProcess = htmlsanitize.StripTags(f.ApplicationProcess)
	f.ContactInfo = htmlsanitize.StripTags(f.ContactInfo)
}

func (f schemeForm) validate() *inputval.Validator {
	v := inputval.New()
	v.Require("title", f.Title, "Please add a title")
	v.MaxLen("title", f.Title, 200, "Title can not be more than 200 characters")
	v.Require("description", f.Description, "Please add a description")
	v.Require("department", f.Department, "Please add a department")
	v.Require("eligibility", f.Eligibility, "Please add eligibility criteria")
	v.Require("benefits", f.Benefits, "Please add benefits")
	v.Require("applicationProcess", f.ApplicationProcess, "Please add an application process")
	return v
}

// splitTags turns the comma-separated tags value into a clean list.
func (f schemeForm) splitTags() []string {
	out := []string{}
	for _, t := range strings.Split(f.Tags, ",") {
		t = strings.TrimSpace(t)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

// apply copies the form fields onto a scheme record. Documents are handled
// by the caller.
func (f schemeForm) apply(sc *models.Scheme) {
	sc.Title = f.Title
	sc.Description = f.Description
	sc.Department = f.Department
	sc.Eligibility = f.Eligibility
	sc.Benefits = f.Benefits
	sc.ApplicationProcess = f.ApplicationProcess
	sc.ContactInfo = f.ContactInfo
	sc.Website = f.Website
	sc.Tags = f.splitTags()
}
