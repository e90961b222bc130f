package model

import (
	"github.com/deppfellow/wedding-backend/internal/validation"
)

// IDParam binds the :id path parameter.
type IDParam struct {
	ID string `param:"id" json:"-" validate:"required"`
}

func (p *IDParam) Validate() error {
	return validation.Struct(p)
}

// EmptyRequest is used by routes that take no input.
type EmptyRequest struct{}

func (r *EmptyRequest) Validate() error {
	return nil
}

// Writable is implemented by payloads that write document fields. Fields
// returns exactly the fields the request may change.
type Writable interface {
	validation.Validatable
	Fields() map[string]any
}

// EntityID is implemented by payloads addressing a single document.
type EntityID interface {
	EntityID() string
}

func (p *IDParam) EntityID() string {
	return p.ID
}

// setIfPresent adds value to fields when it is non-empty.
func setIfPresent(fields map[string]any, key, value string) {
	if value != "" {
		fields[key] = value
	}
}

// ---- invitations

type CreateInvitationRequest struct {
	Name    string `json:"name" validate:"required,notblank,max=100"`
	Status  string `json:"status" validate:"required,oneof=pending attending declined"`
	Message string `json:"message" validate:"required,notblank,max=1000"`
}

func (r *CreateInvitationRequest) Validate() error {
	return validation.Struct(r)
}

func (r *CreateInvitationRequest) Fields() map[string]any {
	return map[string]any{"name": r.Name, "status": r.Status, "message": r.Message}
}

type UpdateInvitationRequest struct {
	IDParam
	Status  string `json:"status" validate:"required,oneof=pending attending declined"`
	Message string `json:"message" validate:"required,notblank,max=1000"`
}

func (r *UpdateInvitationRequest) Validate() error {
	return validation.Struct(r)
}

func (r *UpdateInvitationRequest) Fields() map[string]any {
	return map[string]any{"status": r.Status, "message": r.Message}
}

// ---- guests

type CreateGuestRequest struct {
	GuestName string `json:"guestName" validate:"required,notblank,max=100"`
}

func (r *CreateGuestRequest) Validate() error {
	return validation.Struct(r)
}

func (r *CreateGuestRequest) Fields() map[string]any {
	return map[string]any{"guestName": r.GuestName}
}

type UpdateGuestRequest struct {
	IDParam
	GuestName string `json:"guestName" validate:"required,notblank,max=100"`
}

func (r *UpdateGuestRequest) Validate() error {
	return validation.Struct(r)
}

func (r *UpdateGuestRequest) Fields() map[string]any {
	return map[string]any{"guestName": r.GuestName}
}

// ---- schedules

type CreateScheduleRequest struct {
	Date    string `json:"date" validate:"required,notblank,max=64"`
	Time    string `json:"time" validate:"required,notblank,max=32"`
	EndTime string `json:"endTime" validate:"omitempty,max=32"`
	Venue   string `json:"venue" validate:"required,notblank,max=200"`
}

func (r *CreateScheduleRequest) Validate() error {
	return validation.Struct(r)
}

func (r *CreateScheduleRequest) Fields() map[string]any {
	fields := map[string]any{"date": r.Date, "time": r.Time, "venue": r.Venue}
	setIfPresent(fields, "endTime", r.EndTime)
	return fields
}

type UpdateScheduleRequest struct {
	IDParam
	Date    string `json:"date" validate:"required,notblank,max=64"`
	Time    string `json:"time" validate:"required,notblank,max=32"`
	EndTime string `json:"endTime" validate:"omitempty,max=32"`
	Venue   string `json:"venue" validate:"omitempty,notblank,max=200"`
}

func (r *UpdateScheduleRequest) Validate() error {
	return validation.Struct(r)
}

func (r *UpdateScheduleRequest) Fields() map[string]any {
	fields := map[string]any{"date": r.Date, "time": r.Time}
	setIfPresent(fields, "endTime", r.EndTime)
	setIfPresent(fields, "venue", r.Venue)
	return fields
}

// ---- map links

type CreateMapLinkRequest struct {
	URL string `json:"url" validate:"required,url,max=2048"`
}

func (r *CreateMapLinkRequest) Validate() error {
	return validation.Struct(r)
}

func (r *CreateMapLinkRequest) Fields() map[string]any {
	return map[string]any{"url": r.URL}
}

type UpdateMapLinkRequest struct {
	IDParam
	URL string `json:"url" validate:"required,url,max=2048"`
}

func (r *UpdateMapLinkRequest) Validate() error {
	return validation.Struct(r)
}

func (r *UpdateMapLinkRequest) Fields() map[string]any {
	return map[string]any{"url": r.URL}
}

// ---- transfer targets

type CreateTransferRequest struct {
	AccountHolderName string `json:"accountHolderName" validate:"required,notblank,max=100"`
	AccountNumber     string `json:"accountNumber" validate:"required,notblank,max=64"`
	BankAccountRef    string `json:"bankAccountRef" validate:"required,notblank,max=64"`
}

func (r *CreateTransferRequest) Validate() error {
	return validation.Struct(r)
}

func (r *CreateTransferRequest) Fields() map[string]any {
	return map[string]any{
		"accountHolderName": r.AccountHolderName,
		"accountNumber":     r.AccountNumber,
		"bankAccountRef":    r.BankAccountRef,
	}
}

type UpdateTransferRequest struct {
	IDParam
	AccountHolderName string `json:"accountHolderName" validate:"required,notblank,max=100"`
	AccountNumber     string `json:"accountNumber" validate:"required,notblank,max=64"`
	BankAccountRef    string `json:"bankAccountRef" validate:"omitempty,notblank,max=64"`
}

func (r *UpdateTransferRequest) Validate() error {
	return validation.Struct(r)
}

func (r *UpdateTransferRequest) Fields() map[string]any {
	fields := map[string]any{
		"accountHolderName": r.AccountHolderName,
		"accountNumber":     r.AccountNumber,
	}
	setIfPresent(fields, "bankAccountRef", r.BankAccountRef)
	return fields
}

// ---- auth

type CredentialsRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=128"`
}

func (r *CredentialsRequest) Validate() error {
	return validation.Struct(r)
}

type TokenResponse struct {
	Message string `json:"message,omitempty"`
	Token   string `json:"token"`
}

type MeResponse struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
}
