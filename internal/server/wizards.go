package server

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Ayflow350/lexend-jobs/components/lookups"
	"github.com/Ayflow350/lexend-jobs/internal/apidoc"
	"github.com/Ayflow350/lexend-jobs/internal/session"
	"github.com/Ayflow350/lexend-jobs/internal/site"
	"github.com/Ayflow350/lexend-jobs/pkg/catalog"
	"github.com/Ayflow350/lexend-jobs/pkg/flow"
	"github.com/Ayflow350/lexend-jobs/pkg/jobpost"
	"github.com/Ayflow350/lexend-jobs/pkg/listedit"
	"github.com/Ayflow350/lexend-jobs/pkg/schema"
)

// operation changes a wizard under its session lock. moved is reported for
// navigation requests and left nil otherwise.
type operation func(r *http.Request, wiz flow.Wizard) (moved *bool, err error)

func (s *Server) mutate(op operation) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var state apidoc.State
		err := s.registry.With(chi.URLParam(r, "id"), func(sess *session.Session, wiz flow.Wizard) error {
			changed, err := op(r, wiz)
			if err != nil {
				return err
			}
			state = apidoc.State{ID: sess.ID, Moved: changed, View: wiz.View()}
			return nil
		})
		if err != nil {
			s.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, state)
	}
}

func (s *Server) create(w http.ResponseWriter, r *http.Request) {
	kind := flow.Kind(chi.URLParam(r, "kind"))
	sess, err := s.registry.Create(kind)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	var state apidoc.State
	err = s.registry.With(sess.ID, func(sess *session.Session, wiz flow.Wizard) error {
		state = apidoc.State{ID: sess.ID, View: wiz.View()}
		return nil
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Location", apidoc.WizardsPath+"/"+sess.ID)
	writeJSON(w, http.StatusCreated, state)
}

func (s *Server) state(w http.ResponseWriter, r *http.Request) {
	s.mutate(func(*http.Request, flow.Wizard) (*bool, error) { return nil, nil })(w, r)
}

func (s *Server) discard(w http.ResponseWriter, r *http.Request) {
	if err := s.registry.Delete(chi.URLParam(r, "id")); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) validate(w http.ResponseWriter, r *http.Request) {
	var resp apidoc.ValidateResponse
	err := s.registry.With(chi.URLParam(r, "id"), func(_ *session.Session, wiz flow.Wizard) error {
		issues := wiz.Validate()
		resp = apidoc.ValidateResponse{Valid: issues.Valid(), Issues: issues, View: wiz.View()}
		return nil
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if resp.Issues == nil {
		resp.Issues = schema.Issues{}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) review(w http.ResponseWriter, r *http.Request) {
	var page site.ReviewPage
	err := s.registry.With(chi.URLParam(r, "id"), func(sess *session.Session, wiz flow.Wizard) error {
		page = site.ReviewPage{SessionID: sess.ID, Review: wiz.Review()}
		if receipt, ok := wiz.Receipt(); ok {
			page.Submitted = true
			page.Receipt = &receipt
		}
		return nil
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	err = site.Serve(w, func(out io.Writer) error { return s.site.Review(out, page) })
	if err != nil {
		s.fail(w, r, err)
	}
}

func (s *Server) sources(w http.ResponseWriter, r *http.Request) {
	var kind flow.Kind
	err := s.registry.With(chi.URLParam(r, "id"), func(sess *session.Session, _ flow.Wizard) error {
		kind = sess.Kind
		return nil
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	list := apidoc.SourceList{Data: []lookups.Endpoint{}}
	if kind == flow.KindFreelancer {
		list.Data = s.lookups.Endpoints(lookups.FreelancerSources(), "")
	}
	writeJSON(w, http.StatusOK, list)
}

func moved(ok bool) *bool { return &ok }

func setField(r *http.Request, wiz flow.Wizard) (*bool, error) {
	var req apidoc.FieldRequest
	if err := decode(r, &req, false); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Path) == "" {
		return nil, badRequest("path is required")
	}
	return nil, asInput(wiz.SetField(req.Path, req.Value))
}

func advance(r *http.Request, wiz flow.Wizard) (*bool, error) {
	ok, err := wiz.Advance(r.Context())
	if err != nil {
		return nil, err
	}
	return moved(ok), nil
}

func skip(_ *http.Request, wiz flow.Wizard) (*bool, error) {
	if err := wiz.Skip(); err != nil {
		return nil, err
	}
	return moved(true), nil
}

func retreat(_ *http.Request, wiz flow.Wizard) (*bool, error) {
	ok, err := wiz.Retreat()
	if err != nil {
		return nil, err
	}
	return moved(ok), nil
}

func jump(r *http.Request, wiz flow.Wizard) (*bool, error) {
	step, err := intParam(chi.URLParam(r, "step"), "step")
	if err != nil {
		return nil, err
	}
	return moved(wiz.JumpToStep(step)), nil
}

func submit(r *http.Request, wiz flow.Wizard) (*bool, error) {
	_, err := wiz.Submit(r.Context())
	return nil, err
}

type skillEditor interface {
	AddSkill(raw string) bool
	RemoveSkill(skill string) bool
}

func addSkill(r *http.Request, wiz flow.Wizard) (*bool, error) {
	editor, ok := wiz.(skillEditor)
	if !ok {
		return nil, errWrongKind
	}
	var req apidoc.SkillRequest
	if err := decode(r, &req, false); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Skill) == "" {
		return nil, badRequest("skill is required")
	}
	editor.AddSkill(req.Skill)
	return nil, nil
}

func removeSkill(r *http.Request, wiz flow.Wizard) (*bool, error) {
	editor, ok := wiz.(skillEditor)
	if !ok {
		return nil, errWrongKind
	}
	skill, err := url.PathUnescape(chi.URLParam(r, "skill"))
	if err != nil {
		return nil, badRequest("invalid skill: %v", err)
	}
	editor.RemoveSkill(skill)
	return nil, nil
}

func freelancerOnly(fn func(*http.Request, *flow.Freelancer) error) operation {
	return func(r *http.Request, wiz flow.Wizard) (*bool, error) {
		f, ok := wiz.(*flow.Freelancer)
		if !ok {
			return nil, errWrongKind
		}
		return nil, fn(r, f)
	}
}

func companyOnly(fn func(*http.Request, *flow.Company) error) operation {
	return func(r *http.Request, wiz flow.Wizard) (*bool, error) {
		c, ok := wiz.(*flow.Company)
		if !ok {
			return nil, errWrongKind
		}
		return nil, fn(r, c)
	}
}

func selectMethod(r *http.Request, f *flow.Freelancer) error {
	var req apidoc.MethodRequest
	if err := decode(r, &req, false); err != nil {
		return err
	}
	return f.SelectMethod(flow.Method(strings.TrimSpace(req.Method)))
}

// toggleSpecialty toggles under the requested category, or the current main
// category when none is given. The pair must exist in the catalog.
func (s *Server) toggleSpecialty(r *http.Request, f *flow.Freelancer) error {
	var req apidoc.SpecialtyRequest
	if err := decode(r, &req, false); err != nil {
		return err
	}
	specialty := strings.TrimSpace(req.Specialty)
	if specialty == "" {
		return badRequest("specialty is required")
	}
	category := strings.TrimSpace(req.Category)
	if category == "" {
		if current, ok := f.Field("mainCategory"); ok {
			category, _ = current.(string)
		}
	}
	if category == "" {
		return badRequest("category is required")
	}
	if _, ok := s.catalog.Category(category); !ok {
		return badRequest("unknown category %q", category)
	}
	known := slices.ContainsFunc(s.catalog.Specialties(category), func(o catalog.Option) bool {
		return o.Value == specialty
	})
	if !known {
		return badRequest("unknown specialty %q in category %q", specialty, category)
	}
	f.ToggleSpecialty(category, specialty)
	return nil
}

func clearSpecialties(_ *http.Request, f *flow.Freelancer) error {
	f.ClearSelections()
	return nil
}

func setPaymentType(r *http.Request, c *flow.Company) error {
	var req apidoc.PaymentTypeRequest
	if err := decode(r, &req, false); err != nil {
		return err
	}
	_, err := c.SetPaymentType(jobpost.PaymentType(req.PaymentType))
	return err
}

func clearFixedBudget(_ *http.Request, c *flow.Company) error {
	c.ClearFixedBudget()
	return nil
}

func addAttachments(r *http.Request, c *flow.Company) error {
	var req apidoc.AttachmentsRequest
	if err := decode(r, &req, false); err != nil {
		return err
	}
	c.AddAttachments(req.Files...)
	return nil
}

func removeAttachment(r *http.Request, c *flow.Company) error {
	index, err := intParam(chi.URLParam(r, "index"), "index")
	if err != nil {
		return err
	}
	return asInput(c.RemoveAttachment(index))
}

func openEditor(r *http.Request, wiz flow.Wizard) (*bool, error) {
	var req apidoc.OpenEditorRequest
	if err := decode(r, &req, true); err != nil {
		return nil, err
	}
	index := -1
	if req.Index != nil {
		if *req.Index < 0 {
			return nil, badRequest("index must be a non-negative integer")
		}
		index = *req.Index
	}
	_, err := wiz.OpenEditor(chi.URLParam(r, "list"), index)
	return nil, err
}

func editorFor(r *http.Request, wiz flow.Wizard) (listedit.Handle, error) {
	name := chi.URLParam(r, "list")
	ed, ok := wiz.Editor(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", flow.ErrUnknownEditor, name)
	}
	return ed, nil
}

func setDraftField(r *http.Request, wiz flow.Wizard) (*bool, error) {
	ed, err := editorFor(r, wiz)
	if err != nil {
		return nil, err
	}
	var req apidoc.FieldRequest
	if err := decode(r, &req, false); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Path) == "" {
		return nil, badRequest("path is required")
	}
	return nil, asInput(ed.SetDraftField(req.Path, req.Value))
}

func saveEditor(r *http.Request, wiz flow.Wizard) (*bool, error) {
	ed, err := editorFor(r, wiz)
	if err != nil {
		return nil, err
	}
	return nil, ed.Save()
}

func cancelEditor(r *http.Request, wiz flow.Wizard) (*bool, error) {
	ed, err := editorFor(r, wiz)
	if err != nil {
		return nil, err
	}
	ed.Cancel()
	return nil, nil
}

func deleteEntry(r *http.Request, wiz flow.Wizard) (*bool, error) {
	ed, err := editorFor(r, wiz)
	if err != nil {
		return nil, err
	}
	index, err := intParam(chi.URLParam(r, "index"), "index")
	if err != nil {
		return nil, err
	}
	return nil, ed.Delete(index)
}
