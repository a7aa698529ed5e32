package partner

import (
	"regexp"
	"strings"
	"time"

	"github.com/bookshop/backend/internal/domain/shared"
)

var phonePattern = regexp.MustCompile(`^\+?[0-9][0-9\s\-]{5,19}$`)
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Client represents a buyer in the partner context.
// It is the aggregate root for client-related operations.
type Client struct {
	shared.BaseAggregateRoot
	Name      string `gorm:"type:varchar(200);not null"`
	Phone     string `gorm:"type:varchar(50);not null;uniqueIndex"`
	Address   string `gorm:"type:text"`
	Email     string `gorm:"type:varchar(200);index"`
	Reference string `gorm:"type:varchar(200)"` // How the client was referred, free text
}

// TableName returns the table name for GORM
func (Client) TableName() string {
	return "clients"
}

// NewClient creates a new client with required fields
func NewClient(name, phone, address string) (*Client, error) {
	if err := validateClientName(name); err != nil {
		return nil, err
	}
	if err := validatePhone(phone); err != nil {
		return nil, err
	}

	client := &Client{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		Phone:             strings.TrimSpace(phone),
		Address:           strings.TrimSpace(address),
	}

	client.AddDomainEvent(NewClientCreatedEvent(client))

	return client, nil
}

// Update updates the client's basic information
func (c *Client) Update(name, phone, address string) error {
	if err := validateClientName(name); err != nil {
		return err
	}
	if err := validatePhone(phone); err != nil {
		return err
	}

	c.Name = strings.TrimSpace(name)
	c.Phone = strings.TrimSpace(phone)
	c.Address = strings.TrimSpace(address)
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	c.AddDomainEvent(NewClientUpdatedEvent(c))

	return nil
}

// SetEmail sets the client's optional email address
func (c *Client) SetEmail(email string) error {
	if email != "" {
		if err := validateEmail(email); err != nil {
			return err
		}
	}

	c.Email = strings.TrimSpace(email)
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// SetReference sets the optional free-text referral note
func (c *Client) SetReference(reference string) error {
	if len(reference) > 200 {
		return shared.NewDomainError("INVALID_REFERENCE", "Reference cannot exceed 200 characters")
	}

	c.Reference = strings.TrimSpace(reference)
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

func validateClientName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Client name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Client name cannot exceed 200 characters")
	}
	return nil
}

func validatePhone(phone string) error {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return shared.NewDomainError("INVALID_PHONE", "Phone number cannot be empty")
	}
	if !phonePattern.MatchString(phone) {
		return shared.NewDomainError("INVALID_PHONE", "Phone number format is invalid")
	}
	return nil
}

func validateEmail(email string) error {
	if !emailPattern.MatchString(strings.TrimSpace(email)) {
		return shared.NewDomainError("INVALID_EMAIL", "Email format is invalid")
	}
	return nil
}
