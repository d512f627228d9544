package catalog

import (
	"testing"
)

const sampleYAML = `
categories:
  - name: Square
    products:
      - name: 5x5cm square
        price: 120
        image: /static/uploads/sq1.jpg
        addons:
          - name: Glitter finish
            price: 30
      - name: 6x6cm square
        price: 150
        image: /static/uploads/sq2.jpg
  - name: Badge
    products:
      - name: Badge brick
        price: 200
        image: /static/uploads/badge.jpg
`

func TestParse(t *testing.T) {
	c, err := Parse([]byte(sampleYAML))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	cats := c.Categories()
	if len(cats) != 2 || cats[0] != "Square" || cats[1] != "Badge" {
		t.Fatalf("categories = %v", cats)
	}

	products := c.Products("Square")
	if len(products) != 2 {
		t.Fatalf("expected 2 square products, got %d", len(products))
	}
	if products[0].Price != 120 {
		t.Fatalf("price = %v, want 120", products[0].Price)
	}
	if len(products[0].Addons) != 1 || products[0].Addons[0].Price != 30 {
		t.Fatalf("addons = %v", products[0].Addons)
	}

	if got := c.Products("missing"); got != nil {
		t.Fatalf("unknown category returned %v", got)
	}
}

func TestParseRejectsDuplicateCategory(t *testing.T) {
	_, err := Parse([]byte("categories:\n  - name: A\n  - name: A\n"))
	if err == nil {
		t.Fatal("expected duplicate category error")
	}
}
