// file: internals/features/timetable/controller/timetable_controller.go
package controller

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"timetable_backend/internals/features/timetable/dto"
	"timetable_backend/internals/features/timetable/engine"
	"timetable_backend/internals/features/timetable/errs"
	"timetable_backend/internals/features/timetable/export"
	"timetable_backend/internals/features/timetable/importer"
	"timetable_backend/internals/features/timetable/service"
	helper "timetable_backend/internals/helpers"
)

const maxImportBytes = 1 << 20

type TimetableController struct {
	Planner   *service.Planner
	Validator *validator.Validate
	Log       *zap.Logger
}

func NewTimetableController(p *service.Planner, log *zap.Logger) *TimetableController {
	if log == nil {
		log = zap.NewNop()
	}
	return &TimetableController{
		Planner:   p,
		Validator: helper.NewValidator(),
		Log:       log,
	}
}

// -----------------------------
// Error mapping
// -----------------------------

func (ctl *TimetableController) fail(c *fiber.Ctx, tag string, err error) error {
	var fe *errs.FieldError
	if errors.As(err, &fe) {
		ctl.Log.Info(tag+" ⚠️ validation failed", zap.Any("fields", fe.Fields))
		return helper.JsonValidationError(c, fe.Fields)
	}

	kind := errs.KindOf(err)
	status := fiber.StatusInternalServerError
	switch kind {
	case errs.KindValidation, errs.KindRange:
		status = fiber.StatusBadRequest
	case errs.KindMalformedResponse:
		status = fiber.StatusBadGateway
	case errs.KindServiceUnavailable:
		status = fiber.StatusServiceUnavailable
	}
	if status >= 500 {
		ctl.Log.Error(tag+" ❌ request failed", zap.String("kind", kind.String()), zap.Error(err))
	} else {
		ctl.Log.Info(tag+" ⚠️ request rejected", zap.String("kind", kind.String()), zap.Error(err))
	}
	return helper.JsonErrorCode(c, status, kind.String(), err.Error())
}

func (ctl *TimetableController) validateBody(c *fiber.Ctx, body any) error {
	if err := ctl.Validator.Struct(body); err != nil {
		return helper.JsonValidationError(c, helper.FieldErrors(err))
	}
	return nil
}

func parseID(c *fiber.Ctx) (uuid.UUID, bool) {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	return id, err == nil
}

// -----------------------------
// Read (public)
// -----------------------------

func (ctl *TimetableController) GetCalendar(c *fiber.Ctx) error {
	return helper.JsonOK(c, "ok", ctl.Planner.Calendar())
}

func (ctl *TimetableController) ListSubjects(c *fiber.Ctx) error {
	var q dto.SubjectQuery
	if err := c.QueryParser(&q); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "query tidak valid: "+err.Error())
	}
	list := service.Search(ctl.Planner.Subjects(), q.Q)
	if q.Grouped {
		return helper.JsonList(c, "ok", service.Group(list))
	}
	return helper.JsonList(c, "ok", dto.FromSubjects(list))
}

func (ctl *TimetableController) SubjectFacets(c *fiber.Ctx) error {
	return helper.JsonOK(c, "ok", service.FacetsOf(ctl.Planner.Subjects()))
}

func (ctl *TimetableController) GetGrid(c *fiber.Ctx) error {
	var q dto.GridQuery
	if err := c.QueryParser(&q); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "query tidak valid: "+err.Error())
	}
	return helper.JsonOK(c, "ok", ctl.Planner.View(q.Filter()))
}

func (ctl *TimetableController) ExportCSV(c *fiber.Ctx) error {
	var q dto.GridQuery
	if err := c.QueryParser(&q); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "query tidak valid: "+err.Error())
	}
	view := ctl.Planner.View(q.Filter())

	var buf bytes.Buffer
	if err := export.CSV(&buf, view.Days, ctl.Planner.Calendar()); err != nil {
		return ctl.fail(c, "[TIMETABLE][EXPORT][CSV]", err)
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s.csv"`, exportName(q)))
	return c.Send(buf.Bytes())
}

func (ctl *TimetableController) ExportHTML(c *fiber.Ctx) error {
	var q dto.GridQuery
	if err := c.QueryParser(&q); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "query tidak valid: "+err.Error())
	}
	view := ctl.Planner.View(q.Filter())

	var buf bytes.Buffer
	doc := export.Document{
		Title:     "Weekly Timetable",
		Simulated: view.Simulated,
		Rows:      view.Days,
		Colors:    view.Colors,
	}
	if err := export.HTML(&buf, doc, ctl.Planner.Calendar()); err != nil {
		return ctl.fail(c, "[TIMETABLE][EXPORT][HTML]", err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(buf.Bytes())
}

func (ctl *TimetableController) ExportXLSX(c *fiber.Ctx) error {
	var q dto.GridQuery
	if err := c.QueryParser(&q); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "query tidak valid: "+err.Error())
	}
	view := ctl.Planner.View(q.Filter())

	var buf bytes.Buffer
	doc := export.Document{Simulated: view.Simulated, Rows: view.Days, Colors: view.Colors}
	if err := export.XLSX(&buf, doc, ctl.Planner.Calendar()); err != nil {
		return ctl.fail(c, "[TIMETABLE][EXPORT][XLSX]", err)
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s.xlsx"`, exportName(q)))
	return c.Send(buf.Bytes())
}

// exportName: "timetable" ditambah nilai filter yang aktif, di-slug.
func exportName(q dto.GridQuery) string {
	parts := []string{"timetable"}
	for _, v := range []string{q.Department, q.Semester, q.Teacher} {
		if v = strings.TrimSpace(v); v != "" && !strings.EqualFold(v, engine.AllValue) {
			parts = append(parts, v)
		}
	}
	return helper.Slugify(strings.Join(parts, " "), 120)
}

// -----------------------------
// Catalog (admin)
// -----------------------------

func (ctl *TimetableController) CreateSubject(c *fiber.Ctx) error {
	ctl.Log.Info("[TIMETABLE][SUBJECT][CREATE] ▶️ incoming request")

	var body dto.SubjectCreateRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "body tidak valid: "+err.Error())
	}
	body.Normalize()
	if err := ctl.validateBody(c, &body); err != nil {
		return err
	}

	s, err := ctl.Planner.AddSubject(c.UserContext(), body.ToSubject())
	if err != nil {
		return ctl.fail(c, "[TIMETABLE][SUBJECT][CREATE]", err)
	}
	return helper.JsonCreated(c, "subject created", dto.FromSubject(s))
}

func (ctl *TimetableController) UpdateSubject(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return helper.JsonError(c, fiber.StatusBadRequest, "id tidak valid")
	}
	current, found := ctl.Planner.Subject(id)
	if !found {
		return helper.JsonError(c, fiber.StatusNotFound, "subject tidak ditemukan")
	}

	var body dto.SubjectUpdateRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "body tidak valid: "+err.Error())
	}
	if err := ctl.validateBody(c, &body); err != nil {
		return err
	}

	s, err := ctl.Planner.UpdateSubject(c.UserContext(), id, body.Apply(current))
	if err != nil {
		return ctl.fail(c, "[TIMETABLE][SUBJECT][UPDATE]", err)
	}
	return helper.JsonUpdated(c, "subject updated", dto.FromSubject(s))
}

func (ctl *TimetableController) DeleteSubject(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return helper.JsonError(c, fiber.StatusBadRequest, "id tidak valid")
	}
	if _, ok := ctl.Planner.Subject(id); !ok {
		return helper.JsonError(c, fiber.StatusNotFound, "subject tidak ditemukan")
	}
	if err := ctl.Planner.RemoveSubject(c.UserContext(), id); err != nil {
		return ctl.fail(c, "[TIMETABLE][SUBJECT][DELETE]", err)
	}
	return helper.JsonDeleted(c, "subject deleted", fiber.Map{"id": id})
}

// ImportSubjects menerima multipart "file", JSON {"text": ...}, atau body
// text/plain mentah.
func (ctl *TimetableController) ImportSubjects(c *fiber.Ctx) error {
	ctl.Log.Info("[TIMETABLE][SUBJECT][IMPORT] ▶️ incoming request")

	text, err := importText(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if strings.TrimSpace(text) == "" {
		return helper.JsonValidationError(c, map[string][]string{"text": {"import text is empty"}})
	}

	rep, err := ctl.Planner.ImportSubjects(c.UserContext(), importer.Parse(text))
	if err != nil {
		return ctl.fail(c, "[TIMETABLE][SUBJECT][IMPORT]", err)
	}
	return helper.JsonCreated(c, fmt.Sprintf("%d subjects imported", rep.ValidCount()), fiber.Map{
		"rows":     rep.Rows,
		"imported": rep.ValidCount(),
		"rejected": rep.InvalidCount(),
	})
}

func importText(c *fiber.Ctx) (string, error) {
	ct := strings.ToLower(c.Get(fiber.HeaderContentType))
	switch {
	case strings.HasPrefix(ct, fiber.MIMEMultipartForm):
		fh, err := c.FormFile("file")
		if err != nil {
			return "", fmt.Errorf("field file wajib diisi")
		}
		if fh.Size > maxImportBytes {
			return "", fmt.Errorf("file terlalu besar (maks %d bytes)", maxImportBytes)
		}
		f, err := fh.Open()
		if err != nil {
			return "", fmt.Errorf("gagal membuka file: %v", err)
		}
		defer f.Close()
		raw, err := io.ReadAll(io.LimitReader(f, maxImportBytes))
		if err != nil {
			return "", fmt.Errorf("gagal membaca file: %v", err)
		}
		return string(raw), nil
	case strings.HasPrefix(ct, fiber.MIMEApplicationJSON):
		var body dto.ImportRequest
		if err := c.BodyParser(&body); err != nil {
			return "", fmt.Errorf("body tidak valid: %v", err)
		}
		return body.Text, nil
	default:
		return string(c.Body()), nil
	}
}

// -----------------------------
// Generate & edit (admin)
// -----------------------------

func (ctl *TimetableController) Generate(c *fiber.Ctx) error {
	ctl.Log.Info("[TIMETABLE][GENERATE] ▶️ incoming request")

	out, err := ctl.Planner.Generate(c.UserContext())
	if err != nil {
		return ctl.fail(c, "[TIMETABLE][GENERATE]", err)
	}
	if !out.Applied {
		return helper.JsonOK(c, "superseded by a newer request", out)
	}
	msg := "timetable generated"
	if out.Simulated {
		msg = "generation service unavailable, simulated timetable applied"
	}
	return helper.JsonOK(c, msg, out)
}

func (ctl *TimetableController) InsertPeriod(c *fiber.Ctx) error {
	var body dto.InsertPeriodRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "body tidak valid: "+err.Error())
	}
	body.Day = strings.TrimSpace(body.Day)
	if err := ctl.validateBody(c, &body); err != nil {
		return err
	}

	written, err := ctl.Planner.InsertPeriod(c.UserContext(), body.Day, *body.PeriodIndex, body.SubjectID)
	if err != nil {
		return ctl.fail(c, "[TIMETABLE][GRID][INSERT]", err)
	}
	return helper.JsonUpdated(c, "period assigned", dto.EditResponse{Day: body.Day, Periods: written})
}

func (ctl *TimetableController) RemovePeriod(c *fiber.Ctx) error {
	day := strings.TrimSpace(c.Params("day"))
	idx, err := c.ParamsInt("index")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "index harus berupa angka")
	}

	cleared, err := ctl.Planner.RemovePeriod(c.UserContext(), day, idx)
	if err != nil {
		return ctl.fail(c, "[TIMETABLE][GRID][REMOVE]", err)
	}
	if cleared == nil {
		cleared = []int{}
	}
	return helper.JsonDeleted(c, "period cleared", dto.EditResponse{Day: day, Periods: cleared})
}

func (ctl *TimetableController) Reset(c *fiber.Ctx) error {
	if err := ctl.Planner.Reset(c.UserContext()); err != nil {
		return ctl.fail(c, "[TIMETABLE][RESET]", err)
	}
	return helper.JsonDeleted(c, "timetable reset", nil)
}
