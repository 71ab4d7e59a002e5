package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/meridiancrm/meridian/internal/entity/domain"
	"github.com/meridiancrm/meridian/pkg/nullable"
)

// Contact sub-records share one pattern: parent existence check, then a
// soft-delete-aware CRUD on the child row.

func (s *Service) CreateAddress(ctx context.Context, parent domain.AddressParent, req domain.SaveAddressRequest) (domain.Address, error) {
	parentID, err := s.parseID(req.ParentID)
	if err != nil {
		return domain.Address{}, err
	}
	if parent == domain.AddressParentEntity {
		if _, err := s.requireEntity(ctx, parentID); err != nil {
			return domain.Address{}, err
		}
	}

	address := domain.Address{
		ID:           s.genID.Generate(),
		ParentID:     parentID,
		ParentTable:  parent,
		AddressLine1: nullable.Apply(nil, req.AddressLine1),
		AddressLine2: nullable.Apply(nil, req.AddressLine2),
		City:         nullable.Apply(nil, req.City),
		State:        nullable.Apply(nil, req.State),
		Country:      nullable.Apply(nil, req.Country),
		Zip:          nullable.Apply(nil, req.Zip),
	}
	address.StampCreated(ctx, time.Now())

	if err := s.repo.InsertAddress(ctx, s.db, &address); err != nil {
		return domain.Address{}, err
	}
	return address, nil
}

func (s *Service) GetAddress(ctx context.Context, parentID, addressID string) (domain.Address, error) {
	parent, err := s.parseID(parentID)
	if err != nil {
		return domain.Address{}, err
	}
	id, err := snowflake.ParseString(strings.TrimSpace(addressID))
	if err != nil {
		return domain.Address{}, domain.ErrAddressNotFound
	}

	address, err := s.repo.FindAddress(ctx, s.db, parent, id)
	if err != nil {
		return domain.Address{}, err
	}
	if address == nil {
		return domain.Address{}, domain.ErrAddressNotFound
	}
	return *address, nil
}

func (s *Service) ListAddresses(ctx context.Context, parent domain.AddressParent, parentID string) ([]domain.Address, error) {
	id, err := s.parseID(parentID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListAddresses(ctx, s.db, id, parent)
}

func (s *Service) UpdateAddress(ctx context.Context, req domain.SaveAddressRequest) (domain.Address, error) {
	address, err := s.GetAddress(ctx, req.ParentID, req.AddressID)
	if err != nil {
		return domain.Address{}, err
	}

	address.AddressLine1 = nullable.Apply(address.AddressLine1, req.AddressLine1)
	address.AddressLine2 = nullable.Apply(address.AddressLine2, req.AddressLine2)
	address.City = nullable.Apply(address.City, req.City)
	address.State = nullable.Apply(address.State, req.State)
	address.Country = nullable.Apply(address.Country, req.Country)
	address.Zip = nullable.Apply(address.Zip, req.Zip)
	address.StampUpdated(ctx, time.Now())

	if err := s.repo.SaveAddress(ctx, s.db, &address); err != nil {
		return domain.Address{}, err
	}
	return address, nil
}

func (s *Service) DeleteAddress(ctx context.Context, parentID, addressID string) error {
	address, err := s.GetAddress(ctx, parentID, addressID)
	if err != nil {
		return err
	}

	address.StampDeleted(ctx, time.Now())
	return s.repo.SaveAddress(ctx, s.db, &address)
}

func (s *Service) CreateEmail(ctx context.Context, req domain.SaveEmailRequest) (domain.Email, error) {
	entityID, err := s.parseID(req.EntityID)
	if err != nil {
		return domain.Email{}, err
	}
	if _, err := s.requireEntity(ctx, entityID); err != nil {
		return domain.Email{}, err
	}

	value, ok := nullable.Required("", req.Email)
	if !ok || value == "" || !strings.Contains(value, "@") {
		return domain.Email{}, domain.ErrInvalidEmail
	}

	email := domain.Email{
		ID:       s.genID.Generate(),
		EntityID: entityID,
		Email:    value,
	}
	email.StampCreated(ctx, time.Now())

	if err := s.repo.InsertEmail(ctx, s.db, &email); err != nil {
		return domain.Email{}, err
	}
	return email, nil
}

func (s *Service) GetEmail(ctx context.Context, entityID, emailID string) (domain.Email, error) {
	parent, err := s.parseID(entityID)
	if err != nil {
		return domain.Email{}, err
	}
	id, err := snowflake.ParseString(strings.TrimSpace(emailID))
	if err != nil {
		return domain.Email{}, domain.ErrEmailNotFound
	}

	email, err := s.repo.FindEmail(ctx, s.db, parent, id)
	if err != nil {
		return domain.Email{}, err
	}
	if email == nil {
		return domain.Email{}, domain.ErrEmailNotFound
	}
	return *email, nil
}

func (s *Service) ListEmails(ctx context.Context, entityID string) ([]domain.Email, error) {
	id, err := s.parseID(entityID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListEmails(ctx, s.db, id)
}

func (s *Service) UpdateEmail(ctx context.Context, req domain.SaveEmailRequest) (domain.Email, error) {
	email, err := s.GetEmail(ctx, req.EntityID, req.EmailID)
	if err != nil {
		return domain.Email{}, err
	}

	value, ok := nullable.Required(email.Email, req.Email)
	if !ok || !strings.Contains(value, "@") {
		return domain.Email{}, domain.ErrInvalidEmail
	}
	email.Email = value
	email.StampUpdated(ctx, time.Now())

	if err := s.repo.SaveEmail(ctx, s.db, &email); err != nil {
		return domain.Email{}, err
	}
	return email, nil
}

func (s *Service) DeleteEmail(ctx context.Context, entityID, emailID string) error {
	email, err := s.GetEmail(ctx, entityID, emailID)
	if err != nil {
		return err
	}

	email.StampDeleted(ctx, time.Now())
	return s.repo.SaveEmail(ctx, s.db, &email)
}

func (s *Service) CreateNumber(ctx context.Context, req domain.SaveNumberRequest) (domain.PhoneNumber, error) {
	entityID, err := s.parseID(req.EntityID)
	if err != nil {
		return domain.PhoneNumber{}, err
	}
	if _, err := s.requireEntity(ctx, entityID); err != nil {
		return domain.PhoneNumber{}, err
	}

	number := domain.PhoneNumber{
		ID:          s.genID.Generate(),
		EntityID:    entityID,
		CountryCode: nullable.Apply(nil, req.CountryCode),
		AreaCode:    nullable.Apply(nil, req.AreaCode),
		LineNumber:  nullable.Apply(nil, req.LineNumber),
		Extension:   nullable.Apply(nil, req.Extension),
	}
	number.StampCreated(ctx, time.Now())

	if err := s.repo.InsertNumber(ctx, s.db, &number); err != nil {
		return domain.PhoneNumber{}, err
	}
	return number, nil
}

func (s *Service) GetNumber(ctx context.Context, entityID, numberID string) (domain.PhoneNumber, error) {
	parent, err := s.parseID(entityID)
	if err != nil {
		return domain.PhoneNumber{}, err
	}
	id, err := snowflake.ParseString(strings.TrimSpace(numberID))
	if err != nil {
		return domain.PhoneNumber{}, domain.ErrNumberNotFound
	}

	number, err := s.repo.FindNumber(ctx, s.db, parent, id)
	if err != nil {
		return domain.PhoneNumber{}, err
	}
	if number == nil {
		return domain.PhoneNumber{}, domain.ErrNumberNotFound
	}
	return *number, nil
}

func (s *Service) ListNumbers(ctx context.Context, entityID string) ([]domain.PhoneNumber, error) {
	id, err := s.parseID(entityID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListNumbers(ctx, s.db, id)
}

func (s *Service) UpdateNumber(ctx context.Context, req domain.SaveNumberRequest) (domain.PhoneNumber, error) {
	number, err := s.GetNumber(ctx, req.EntityID, req.NumberID)
	if err != nil {
		return domain.PhoneNumber{}, err
	}

	number.CountryCode = nullable.Apply(number.CountryCode, req.CountryCode)
	number.AreaCode = nullable.Apply(number.AreaCode, req.AreaCode)
	number.LineNumber = nullable.Apply(number.LineNumber, req.LineNumber)
	number.Extension = nullable.Apply(number.Extension, req.Extension)
	number.StampUpdated(ctx, time.Now())

	if err := s.repo.SaveNumber(ctx, s.db, &number); err != nil {
		return domain.PhoneNumber{}, err
	}
	return number, nil
}

func (s *Service) DeleteNumber(ctx context.Context, entityID, numberID string) error {
	number, err := s.GetNumber(ctx, entityID, numberID)
	if err != nil {
		return err
	}

	number.StampDeleted(ctx, time.Now())
	return s.repo.SaveNumber(ctx, s.db, &number)
}

func (s *Service) CreateWebsite(ctx context.Context, req domain.SaveWebsiteRequest) (domain.Website, error) {
	entityID, err := s.parseID(req.EntityID)
	if err != nil {
		return domain.Website{}, err
	}
	if _, err := s.requireEntity(ctx, entityID); err != nil {
		return domain.Website{}, err
	}

	url, ok := nullable.Required("", req.URL)
	if !ok || url == "" {
		return domain.Website{}, domain.ErrInvalidURL
	}

	website := domain.Website{
		ID:          s.genID.Generate(),
		EntityID:    entityID,
		URL:         url,
		Description: nullable.Apply(nil, req.Description),
	}
	website.StampCreated(ctx, time.Now())

	if err := s.repo.InsertWebsite(ctx, s.db, &website); err != nil {
		return domain.Website{}, err
	}
	return website, nil
}

func (s *Service) GetWebsite(ctx context.Context, entityID, websiteID string) (domain.Website, error) {
	parent, err := s.parseID(entityID)
	if err != nil {
		return domain.Website{}, err
	}
	id, err := snowflake.ParseString(strings.TrimSpace(websiteID))
	if err != nil {
		return domain.Website{}, domain.ErrWebsiteNotFound
	}

	website, err := s.repo.FindWebsite(ctx, s.db, parent, id)
	if err != nil {
		return domain.Website{}, err
	}
	if website == nil {
		return domain.Website{}, domain.ErrWebsiteNotFound
	}
	return *website, nil
}

func (s *Service) ListWebsites(ctx context.Context, entityID string) ([]domain.Website, error) {
	id, err := s.parseID(entityID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListWebsites(ctx, s.db, id)
}

func (s *Service) UpdateWebsite(ctx context.Context, req domain.SaveWebsiteRequest) (domain.Website, error) {
	website, err := s.GetWebsite(ctx, req.EntityID, req.WebsiteID)
	if err != nil {
		return domain.Website{}, err
	}

	url, ok := nullable.Required(website.URL, req.URL)
	if !ok {
		return domain.Website{}, domain.ErrInvalidURL
	}
	website.URL = url
	website.Description = nullable.Apply(website.Description, req.Description)
	website.StampUpdated(ctx, time.Now())

	if err := s.repo.SaveWebsite(ctx, s.db, &website); err != nil {
		return domain.Website{}, err
	}
	return website, nil
}

func (s *Service) DeleteWebsite(ctx context.Context, entityID, websiteID string) error {
	website, err := s.GetWebsite(ctx, entityID, websiteID)
	if err != nil {
		return err
	}

	website.StampDeleted(ctx, time.Now())
	return s.repo.SaveWebsite(ctx, s.db, &website)
}
