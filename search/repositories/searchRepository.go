package repositories

import (
	"tax-backoffice-backend/db/models"
	searchindex "tax-backoffice-backend/search/services"
)

const (
	usersIndex     = "users"
	casesIndex     = "cases"
	inquiriesIndex = "inquiries"
)

// SearchRepository translates entities into their indexed documents.
type SearchRepository struct {
	indexer *searchindex.IndexingService
}

type SearchRepositoryInterface interface {
	IndexUser(user models.User) error
	IndexExistingUsers(users []models.User) error
	IndexCase(taxCase models.TaxCase) error
	DeleteCase(caseID string) error
	IndexInquiry(inquiry models.Inquiry) error
}

// Constructor returning both the struct and the interface
func NewSearchRepository(indexer *searchindex.IndexingService) (*SearchRepository, SearchRepositoryInterface) {
	repo := &SearchRepository{indexer: indexer}
	return repo, repo
}

type userDocument struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

func (r *SearchRepository) IndexUser(user models.User) error {
	doc := userDocument{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
		Role:  string(user.Role),
	}
	return r.indexer.IndexDocument(usersIndex, user.ID, doc)
}

func (r *SearchRepository) IndexExistingUsers(users []models.User) error {
	docs := make(map[string]interface{}, len(users))
	for _, user := range users {
		docs[user.ID] = userDocument{
			ID:    user.ID,
			Email: user.Email,
			Name:  user.Name,
			Role:  string(user.Role),
		}
	}
	return r.indexer.BulkIndexDocuments(usersIndex, docs)
}

type caseDocument struct {
	ID          string `json:"id"`
	ClientEmail string `json:"client_email"`
	Service     string `json:"service"`
	Status      string `json:"status"`
	Notes       string `json:"notes"`
}

func (r *SearchRepository) IndexCase(taxCase models.TaxCase) error {
	doc := caseDocument{
		ID:      taxCase.ID,
		Service: taxCase.Service,
		Status:  string(taxCase.Status),
		Notes:   taxCase.Notes,
	}
	if taxCase.Client != nil {
		doc.ClientEmail = taxCase.Client.Email
	}
	return r.indexer.IndexDocument(casesIndex, taxCase.ID, doc)
}

func (r *SearchRepository) DeleteCase(caseID string) error {
	return r.indexer.DeleteDocument(casesIndex, caseID)
}

type inquiryDocument struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

func (r *SearchRepository) IndexInquiry(inquiry models.Inquiry) error {
	doc := inquiryDocument{
		ID:      inquiry.ID,
		Name:    inquiry.Name,
		Email:   inquiry.Email,
		Subject: inquiry.Subject,
		Message: inquiry.Message,
		Status:  string(inquiry.Status),
	}
	return r.indexer.IndexDocument(inquiriesIndex, inquiry.ID, doc)
}
