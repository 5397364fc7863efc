package handler

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"eventdesk/internal/attendee/identifier"
	"eventdesk/internal/attendee/models"
	"eventdesk/internal/attendee/report"
	"eventdesk/internal/platform/metrics"
	"eventdesk/internal/platform/middleware"
	dErrors "eventdesk/pkg/domain-errors"
	"eventdesk/pkg/platform/httputil"
	"eventdesk/pkg/requestcontext"
)

const (
	defaultPageLimit = 100
	maxPageLimit     = 1000
	maxImportBytes   = 10 << 20
)

// Service is the attendee desk as seen by HTTP.
type Service interface {
	ImportCSV(ctx context.Context, r io.Reader, emit bool) (*models.ImportResult, error)
	Register(ctx context.Context, row models.ImportRow, emit bool) (*models.Attendee, error)
	Get(ctx context.Context, id string) (*models.Attendee, error)
	List(ctx context.Context) []*models.Attendee
	Search(ctx context.Context, query string) []*models.Attendee
	CheckIn(ctx context.Context, id string) (*models.Result, error)
	CollectLunch(ctx context.Context, id string, day *models.Date) (*models.Result, error)
	CollectKit(ctx context.Context, id string) (*models.Result, error)
	Credential(ctx context.Context, id string) (*identifier.Credential, error)
	Stats(ctx context.Context) models.Stats
	ExportReport(ctx context.Context, kind report.Kind, w io.Writer) error
	ManualBackup(ctx context.Context) (string, error)
}

// Handler serves the attendee desk endpoints.
type Handler struct {
	service Service
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// New creates a Handler. metrics may be nil.
func New(service Service, logger *slog.Logger, metrics *metrics.Metrics) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
		metrics: metrics,
	}
}

// Register mounts the desk routes on r.
func (h *Handler) Register(r chi.Router) {
	desk := chi.NewRouter()
	desk.Use(middleware.Recovery(h.logger))
	desk.Use(middleware.RequestID)
	desk.Use(middleware.Logger(h.logger, h.metrics))

	desk.Route("/attendees", func(r chi.Router) {
		r.Post("/import", h.HandleImport)
		r.Post("/", h.HandleRegister)
		r.Get("/", h.HandleList)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.HandleGet)
			r.Post("/check-in", h.HandleCheckIn)
			r.Post("/lunch", h.HandleLunch)
			r.Post("/kit", h.HandleKit)
			r.Get("/credential", h.HandleCredential)
		})
	})
	desk.Get("/stats", h.HandleStats)
	desk.Get("/reports/{kind}", h.HandleReport)
	desk.Post("/backups", h.HandleBackup)

	r.Mount("/", desk)
}

// HandleImport accepts a CSV either as the "file" part of a multipart form
// or as the raw request body. ?credentials=true also writes credentials.
func (h *Handler) HandleImport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	emit, ok := h.boolQuery(w, r, "credentials")
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxImportBytes)
	src, closeSrc, err := importSource(r)
	if err != nil {
		h.logger.WarnContext(ctx, "invalid import upload",
			"error", err,
			"request_id", requestID,
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "expected a csv body or a multipart file field"))
		return
	}
	defer closeSrc()

	res, err := h.service.ImportCSV(ctx, src, emit)
	if err != nil {
		h.writeServiceError(ctx, w, "import", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, res)
}

func importSource(r *http.Request) (io.Reader, func(), error) {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || mediaType != "multipart/form-data" {
		return r.Body, func() {}, nil
	}
	f, _, err := r.FormFile("file")
	if err != nil {
		return nil, nil, err
	}
	return f, func() { _ = f.Close() }, nil
}

// HandleRegister adds one attendee from a JSON body.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	emit, ok := h.boolQuery(w, r, "credentials")
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[RegisterRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	a, err := h.service.Register(ctx, req.Row(), emit)
	if err != nil {
		h.writeServiceError(ctx, w, "register", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, a)
}

// HandleList returns attendees in insertion order. ?search filters by
// substring; ?skip and ?limit page the result.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	skip, ok := h.intQuery(w, r, "skip", 0)
	if !ok {
		return
	}
	limit, ok := h.intQuery(w, r, "limit", defaultPageLimit)
	if !ok {
		return
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	var all []*models.Attendee
	if query := q.Get("search"); query != "" {
		all = h.service.Search(ctx, query)
	} else {
		all = h.service.List(ctx)
	}

	page := []*models.Attendee{}
	if skip < len(all) {
		page = all[skip:min(skip+limit, len(all))]
	}
	httputil.WriteJSON(w, http.StatusOK, ListResponse{
		Attendees: page,
		Total:     len(all),
		Skip:      skip,
		Limit:     limit,
	})
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	a, err := h.service.Get(ctx, chi.URLParam(r, "id"))
	if err != nil {
		h.writeServiceError(ctx, w, "get", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, a)
}

func (h *Handler) HandleCheckIn(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	res, err := h.service.CheckIn(ctx, chi.URLParam(r, "id"))
	if err != nil {
		h.writeServiceError(ctx, w, "check_in", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, res)
}

// HandleLunch records lunch for the date in the body, or today when the
// body is empty.
func (h *Handler) HandleLunch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[LunchRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	res, err := h.service.CollectLunch(ctx, chi.URLParam(r, "id"), req.Day())
	if err != nil {
		h.writeServiceError(ctx, w, "collect_lunch", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, res)
}

func (h *Handler) HandleKit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	res, err := h.service.CollectKit(ctx, chi.URLParam(r, "id"))
	if err != nil {
		h.writeServiceError(ctx, w, "collect_kit", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, res)
}

// HandleCredential streams the rendered credential for an attendee.
func (h *Handler) HandleCredential(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")
	c, err := h.service.Credential(ctx, id)
	if err != nil {
		h.writeServiceError(ctx, w, "credential", err)
		return
	}
	w.Header().Set("Content-Type", c.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", id+"."+c.Ext))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(c.Body)
}

func (h *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, h.service.Stats(r.Context()))
}

// HandleReport renders a CSV report as an attachment. The body is buffered
// so a failure can still be reported as JSON.
func (h *Handler) HandleReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	kind, err := report.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		h.logger.InfoContext(ctx, "unknown report kind",
			"error", err,
			"request_id", requestID,
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, err.Error()))
		return
	}

	var buf bytes.Buffer
	if err := h.service.ExportReport(ctx, kind, &buf); err != nil {
		h.writeServiceError(ctx, w, "export_report", err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", report.FileName(kind, requestcontext.Now(ctx))))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// HandleBackup copies the current snapshot. With nothing saved yet it
// answers 200 with an empty path.
func (h *Handler) HandleBackup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	path, err := h.service.ManualBackup(ctx)
	if err != nil {
		h.writeServiceError(ctx, w, "backup", err)
		return
	}
	if path == "" {
		httputil.WriteJSON(w, http.StatusOK, BackupResponse{Message: "No data file exists to back up"})
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, BackupResponse{Path: path, Message: "Backup created"})
}

func (h *Handler) writeServiceError(ctx context.Context, w http.ResponseWriter, op string, err error) {
	level := slog.LevelInfo
	if dErrors.IsFault(err) {
		level = slog.LevelError
	}
	h.logger.Log(ctx, level, "request failed",
		"operation", op,
		"error", err,
		"request_id", requestcontext.RequestID(ctx),
	)
	httputil.WriteError(w, err)
}

func (h *Handler) boolQuery(w http.ResponseWriter, r *http.Request, key string) (bool, bool) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return false, true
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, key+" must be true or false"))
		return false, false
	}
	return v, true
}

func (h *Handler) intQuery(w http.ResponseWriter, r *http.Request, key string, fallback int) (int, bool) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, key+" must be a non-negative integer"))
		return 0, false
	}
	return v, true
}
