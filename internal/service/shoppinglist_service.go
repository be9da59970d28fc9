package service

import (
	"bytes"
	"context"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/d60-Lab/foodgram-backend/internal/repository"
)

const (
	pdfFont       = "Helvetica"
	pdfFontSize   = 12.0
	pdfLeftMargin = 72.0
	pdfTopStart   = 40.0
	pdfLineHeight = 20.0
	pdfBottomPad  = 40.0
)

type ShoppingListService interface {
	// Aggregate returns the summed shopping list lines for the user's cart,
	// ordered by ingredient name. An empty cart yields an empty slice.
	Aggregate(ctx context.Context, userID uint) ([]repository.ShoppingListItem, error)
	// RenderPDF lays the aggregated list out as a paginated PDF document.
	RenderPDF(username string, items []repository.ShoppingListItem) ([]byte, error)
}

type shoppingListService struct {
	recipes repository.RecipeRepository
}

func NewShoppingListService(recipes repository.RecipeRepository) ShoppingListService {
	return &shoppingListService{recipes: recipes}
}

func (s *shoppingListService) Aggregate(ctx context.Context, userID uint) ([]repository.ShoppingListItem, error) {
	return s.recipes.AggregateShoppingList(ctx, userID)
}

// RenderPDF draws one line per entry with a fixed advance, breaking to a new
// page before the cursor crosses the bottom threshold. Entries are never
// split or dropped.
func (s *shoppingListService) RenderPDF(username string, items []repository.ShoppingListItem) ([]byte, error) {
	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.AddPage()
	pdf.SetFont(pdfFont, "", pdfFontSize)
	_, pageHeight := pdf.GetPageSize()

	y := pdfTopStart
	pdf.Text(pdfLeftMargin, y, fmt.Sprintf("Shopping list for %s", username))
	y += pdfLineHeight

	if len(items) == 0 {
		pdf.Text(pdfLeftMargin, y, "The shopping list is empty.")
	}
	for _, item := range items {
		pdf.Text(pdfLeftMargin, y, fmt.Sprintf("%s: %d %s",
			item.Name, item.TotalAmount, item.MeasurementUnit))
		y += pdfLineHeight
		if y > pageHeight-pdfBottomPad {
			pdf.AddPage()
			pdf.SetFont(pdfFont, "", pdfFontSize)
			y = pdfTopStart
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
