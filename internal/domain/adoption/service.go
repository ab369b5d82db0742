package adoption

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"refugio-adopciones/internal/platform/logger"
)

const SuccessMessage = "Gracias por tu interés. Te contactaremos pronto con la información de adopción."

// Recorder guarda el pedido para seguimiento manual (modo sin email).
type Recorder interface {
	Record(ctx context.Context, rec Record) error
}

// Message es un email transaccional ya renderizado.
type Message struct {
	To      string
	Subject string
	HTML    string
}

// Sender hace el envío real. Devuelve el payload del proveedor tal cual.
type Sender interface {
	Send(ctx context.Context, msg Message) (json.RawMessage, error)
}

// UpstreamError envuelve una falla del recorder o del proveedor de email.
// Error() es el texto de upstream sin prefijos: es lo que se devuelve al cliente.
type UpstreamError struct {
	Err error
}

func (e *UpstreamError) Error() string { return e.Err.Error() }
func (e *UpstreamError) Unwrap() error { return e.Err }

// Result es la respuesta 200: o el payload del proveedor, o el ack del modo record.
type Result struct {
	Payload json.RawMessage
}

type Service struct {
	recorder Recorder
	sender   Sender // nil => modo record

	shelterName string
	subject     string

	log logger.Logger
	now func() time.Time
}

type Option func(*Service)

func WithSender(s Sender) Option {
	return func(svc *Service) { svc.sender = s }
}

func WithLogger(l logger.Logger) Option {
	return func(svc *Service) {
		if l != nil {
			svc.log = l
		}
	}
}

func WithSubject(subject string) Option {
	return func(svc *Service) {
		if strings.TrimSpace(subject) != "" {
			svc.subject = subject
		}
	}
}

func WithShelterName(name string) Option {
	return func(svc *Service) {
		if strings.TrimSpace(name) != "" {
			svc.shelterName = name
		}
	}
}

func NewService(recorder Recorder, opts ...Option) *Service {
	svc := &Service{
		recorder:    recorder,
		shelterName: "Refugio Municipal de Curicó",
		subject:     "Información de adopción",
		log:         logger.Nop(),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(svc)
	}
	if svc.recorder == nil {
		svc.recorder = NewLogRecorder(svc.log)
	}
	return svc
}

// Mode devuelve "email" o "record".
func (s *Service) Mode() string {
	if s.sender != nil {
		return "email"
	}
	return "record"
}

// Submit valida y, si pasa, hace exactamente un envío (o un registro).
// No hay reintentos ni deduplicación.
func (s *Service) Submit(ctx context.Context, req Request) (Result, error) {
	if err := req.Validate(); err != nil {
		return Result{}, err
	}

	if s.sender == nil {
		return s.record(ctx, req)
	}
	return s.send(ctx, req)
}

func (s *Service) record(ctx context.Context, req Request) (Result, error) {
	rec := Record{
		Name:           req.Name,
		Email:          req.Email,
		ShelterAddress: req.ShelterAddress,
		ReceivedAt:     s.now().UTC(),
	}
	if err := s.recorder.Record(ctx, rec); err != nil {
		return Result{}, &UpstreamError{Err: err}
	}

	payload, err := json.Marshal(map[string]any{
		"success": true,
		"message": SuccessMessage,
	})
	if err != nil {
		return Result{}, err
	}
	return Result{Payload: payload}, nil
}

func (s *Service) send(ctx context.Context, req Request) (Result, error) {
	html, err := renderEmail(emailData{
		Name:           req.Name,
		ShelterName:    s.shelterName,
		ShelterAddress: req.ShelterAddress,
	})
	if err != nil {
		return Result{}, fmt.Errorf("render email: %w", err)
	}

	payload, err := s.sender.Send(ctx, Message{
		To:      req.Email,
		Subject: s.subject,
		HTML:    html,
	})
	if err != nil {
		return Result{}, &UpstreamError{Err: err}
	}

	s.log.Info("adoption info email sent", map[string]any{"email": req.Email})
	return Result{Payload: payload}, nil
}

// LogRecorder solo deja el pedido en el log (variante mínima).
type LogRecorder struct {
	log logger.Logger
}

func NewLogRecorder(l logger.Logger) *LogRecorder {
	if l == nil {
		l = logger.Nop()
	}
	return &LogRecorder{log: l}
}

func (r *LogRecorder) Record(ctx context.Context, rec Record) error {
	if rec.Email == "" {
		return errors.New("adoption: empty record")
	}
	r.log.Info("adoption info request received", map[string]any{
		"name":            rec.Name,
		"email":           rec.Email,
		"shelter_address": rec.ShelterAddress,
	})
	return nil
}
