package storage

import "github.com/SauravKesari/billify/internal/models"

// Starter records written the first time a scope is seen. Ids are plain
// ordinals; normalizeIDs keeps them stable as strings.
func defaultProducts() []models.Product {
	return []models.Product{
		{ID: "1", Name: "Web Design Basic", Price: 500, Unit: "service", Category: "Service", Description: "5 page static site"},
		{ID: "2", Name: "SEO Audit", Price: 250, Unit: "service", Category: "Consulting", Description: "Comprehensive site audit"},
		{ID: "3", Name: "Logo Design", Price: 150, Unit: "pcs", Category: "Design", Description: "Vector logo with 3 revisions"},
	}
}

func defaultCustomers() []models.Customer {
	return []models.Customer{
		{ID: "1", Name: "Acme Corp", Email: "billing@acme.com", Phone: "555-0123", Address: "123 Innovation Dr"},
		{ID: "2", Name: "Jane Doe", Email: "jane@example.com", Phone: "555-0199", Address: "456 Resident St"},
	}
}

// Seed populates products and customers with starter data, but only for
// collections the scope has never saved. A previously emptied collection
// (saved as []) stays empty.
func (s *Store) Seed(scope string) error {
	if _, ok, err := s.get(scope, colProducts); err != nil {
		return err
	} else if !ok {
		if err := s.SaveProducts(scope, defaultProducts()); err != nil {
			return err
		}
	}
	if _, ok, err := s.get(scope, colCustomers); err != nil {
		return err
	} else if !ok {
		if err := s.SaveCustomers(scope, defaultCustomers()); err != nil {
			return err
		}
	}
	return nil
}
