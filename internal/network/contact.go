package network

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

const (
	ContactIDField       = "ID"
	ContactIndustryField = "Industry"
)

// Contact is a single member of the professional network.
type Contact struct {
	ID        string         `json:"id"`
	Name      string         `json:"name,omitempty"`
	Title     string         `json:"title,omitempty"`
	Bio       string         `json:"bio,omitempty"`
	Industry  string         `json:"industry,omitempty"`
	Location  string         `json:"location,omitempty"`
	Skills    []string       `json:"skills,omitempty"`
	Needs     []string       `json:"needs,omitempty"`
	Offerings []string       `json:"offerings,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// Contacts is a mutable list of contacts with helpers shared across the engine.
type Contacts struct {
	Items []*Contact
}

func (c *Contacts) Len() int {
	return len(c.Items)
}

func (c *Contacts) IDs() []string {
	ids := make([]string, 0, len(c.Items))
	for _, contact := range c.Items {
		ids = append(ids, contact.ID)
	}
	return ids
}

func (c *Contacts) FindByID(id string) *Contact {
	for _, contact := range c.Items {
		if contact.ID == id {
			return contact
		}
	}
	return nil
}

func (ct *Contact) GetStringField(name string) string {
	switch name {
	case ContactIDField:
		return ct.ID
	case ContactIndustryField:
		return ct.Industry
	default:
		return ""
	}
}

// Exclude removes contacts whose field matches any of the targets and returns removed ids.
func (c *Contacts) Exclude(name string, targets []string) []string {
	var excluded []string
	for _, target := range targets {
		for idx, contact := range c.Items {
			if contact.GetStringField(name) == target {
				c.RemoveByIndex(idx)
				excluded = append(excluded, contact.ID)
				break
			}
		}
	}
	return excluded
}

// RemoveByIndex removes a contact from the list by index. Does not preserve order.
func (c *Contacts) RemoveByIndex(idx int) {
	c.Items[idx] = c.Items[len(c.Items)-1]
	c.Items = c.Items[:len(c.Items)-1]
}

// ReportByIndustry groups contact summaries under "industry" keys.
func (c *Contacts) ReportByIndustry() map[string][]map[string]string {
	report := make(map[string][]map[string]string)
	for _, contact := range c.Items {
		key := contact.Industry
		if key == "" {
			key = "unknown"
		}
		report[key] = append(report[key], map[string]string{
			"id":        contact.ID,
			"name":      contact.Name,
			"title":     contact.Title,
			"location":  contact.Location,
			"offerings": strings.Join(contact.Offerings, ", "),
		})
	}
	return report
}

func (c *Contacts) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "contacts_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(c); err != nil {
		return "", err
	}
	return file.Name(), nil
}

// SearchText is the free text the engine mines for needs, urgency and intent.
// It falls back from explicit needs to the bio so sparse profiles still work.
func (ct *Contact) SearchText() string {
	if len(ct.Needs) > 0 {
		return strings.Join(ct.Needs, ". ")
	}
	return ct.Bio
}

func (ct *Contact) String() string {
	return fmt.Sprintf("%s (%s)", ct.Name, ct.ID)
}
