package contact

import "context"

// Seed fills an empty directory with a handful of development contacts. Used
// behind a config flag so local runs have something to search.
func Seed(ctx context.Context, svc *Service) error {
	records := []ContactRecord{
		{Name: "Marie Dubois", Phone: "+33 6 12 34 56 78", Email: "marie@example.com"},
		{Name: "Pierre Martin", Phone: "+33 6 87 65 43 21", Email: "pierre@example.com"},
		{Name: "Sophie Laurent", Phone: "+33 6 11 22 33 44", Email: "sophie@example.com"},
		{Name: "Thomas Moreau", Phone: "+33 6 55 66 77 88", Email: "thomas@example.com"},
		{Name: "Julie Bernard", Phone: "+33 6 99 88 77 66", Email: "julie@example.com"},
	}
	for _, r := range records {
		if _, err := svc.ImportRecord(ctx, r.Name, r.Phone, r.Email); err != nil {
			return err
		}
	}
	return nil
}
