package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// DomainStatus represents the lifecycle state of a domain record
type DomainStatus string

const (
	DomainStatusAvailable        DomainStatus = "available"
	DomainStatusPending          DomainStatus = "pending"
	DomainStatusPaymentCompleted DomainStatus = "payment_completed"
	DomainStatusRegistered       DomainStatus = "registered"
	DomainStatusExpired          DomainStatus = "expired"
	DomainStatusReserved         DomainStatus = "reserved"
	DomainStatusRefunded         DomainStatus = "refunded"
)

// ActiveDomainStatuses are the states in which a full domain is considered
// taken. At most one row per full_domain may hold one of these at a time.
var ActiveDomainStatuses = []DomainStatus{
	DomainStatusRegistered,
	DomainStatusPending,
	DomainStatusPaymentCompleted,
}

// DefaultDomainCost is the registrar cost assumed when the availability
// check returns no price.
const DefaultDomainCost = 12.99

// MarkupRate is the flat margin applied on top of registrar cost.
const MarkupRate = 0.10

// Pricing holds registrar cost and customer-facing price in dollars
type Pricing struct {
	Cost         float64 `json:"cost"`
	Markup       float64 `json:"markup"`
	SellingPrice float64 `json:"sellingPrice"`
	Currency     string  `json:"currency"`
}

// NewPricing computes the customer price from registrar cost
func NewPricing(cost float64, currency string) Pricing {
	if cost <= 0 {
		cost = DefaultDomainCost
	}
	if currency == "" {
		currency = "USD"
	}
	return Pricing{
		Cost:         cost,
		Markup:       cost * MarkupRate,
		SellingPrice: cost * (1 + MarkupRate),
		Currency:     currency,
	}
}

// DNSRecord is one host record of a domain
type DNSRecord struct {
	Type  string `json:"type" binding:"required,oneof=A AAAA CNAME MX TXT NS"`
	Name  string `json:"name" binding:"required"`
	Value string `json:"value" binding:"required"`
	TTL   int    `json:"ttl"`
}

// Domain represents a domain record
type Domain struct {
	ID               uuid.UUID    `json:"id"`
	Name             string       `json:"name"`
	Extension        string       `json:"extension"`
	FullDomain       string       `json:"fullDomain"`
	Status           DomainStatus `json:"status"`
	OwnerID          null.String  `json:"ownerId,omitempty"`
	Registrar        string       `json:"registrar"`
	Pricing          Pricing      `json:"pricing"`
	DNSRecords       []DNSRecord  `json:"dnsRecords"`
	RegistrationDate null.Time    `json:"registrationDate,omitempty"`
	ExpirationDate   null.Time    `json:"expirationDate,omitempty"`
	AutoRenew        bool         `json:"autoRenew"`
	CreatedAt        time.Time    `json:"createdAt"`
	UpdatedAt        time.Time    `json:"updatedAt"`
}

// ContactInfo is the registrant record sent to the registrar
type ContactInfo struct {
	FirstName  string `json:"firstName" binding:"required"`
	LastName   string `json:"lastName" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Phone      string `json:"phone" binding:"required"`
	Address    string `json:"address" binding:"required"`
	City       string `json:"city" binding:"required"`
	State      string `json:"state" binding:"required"`
	PostalCode string `json:"postalCode" binding:"required"`
	Country    string `json:"country" binding:"required"`
}

// PurchaseDomainInput initiates a purchase
type PurchaseDomainInput struct {
	Domain      string       `json:"domain" binding:"required,min=3"`
	Years       int          `json:"years" binding:"omitempty,min=1,max=10"`
	ContactInfo *ContactInfo `json:"contactInfo"`
}

// RenewDomainInput requests a renewal transaction
type RenewDomainInput struct {
	Years int `json:"years" binding:"omitempty,min=1,max=10"`
}

// TransferDomainInput initiates an inbound transfer
type TransferDomainInput struct {
	Domain      string       `json:"domain" binding:"required,min=3"`
	AuthCode    string       `json:"authCode" binding:"required"`
	ContactInfo *ContactInfo `json:"contactInfo"`
}

// UpdateDNSInput replaces a domain's host records
type UpdateDNSInput struct {
	Records []DNSRecord `json:"records" binding:"required,min=1,dive"`
}

// AvailabilityResult is one availability answer for a full domain
type AvailabilityResult struct {
	Domain    string  `json:"domain"`
	Available bool    `json:"available"`
	Price     float64 `json:"price"`
	Currency  string  `json:"currency"`
	Message   string  `json:"message,omitempty"`
}

// DomainListFilter parameterizes owner domain listings
type DomainListFilter struct {
	Status DomainStatus
	Page   int
	Limit  int
}
