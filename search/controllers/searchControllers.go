package controllers

import (
	"fmt"

	"tax-backoffice-backend/config"
	searchindex "tax-backoffice-backend/search/services"

	"github.com/blevesearch/bleve/v2"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type SearchController struct {
	indexer *searchindex.IndexingService
}

func NewSearchController(indexer *searchindex.IndexingService) *SearchController {
	return &SearchController{indexer: indexer}
}

func (sc *SearchController) SearchUsersController(c *fiber.Ctx) error {
	return sc.search(c, "users")
}

func (sc *SearchController) SearchCasesController(c *fiber.Ctx) error {
	return sc.search(c, "cases")
}

func (sc *SearchController) SearchInquiriesController(c *fiber.Ctx) error {
	return sc.search(c, "inquiries")
}

func (sc *SearchController) search(c *fiber.Ctx, indexName string) error {
	q := c.Query("q")
	if q == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "q parameter is required",
		})
	}

	size := c.QueryInt("size", 25)
	if size < 1 || size > 100 {
		size = 25
	}

	// Prefix match keeps type-ahead searches useful on partial input.
	query := bleve.NewDisjunctionQuery(
		bleve.NewMatchQuery(q),
		bleve.NewPrefixQuery(q),
		bleve.NewWildcardQuery(fmt.Sprintf("*%s*", q)),
	)

	result, err := sc.indexer.SearchIndex(indexName, query, size)
	if err != nil {
		config.Logger.Error("Search failed", zap.String("index", indexName), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Search failed",
		})
	}

	hits := make([]map[string]interface{}, 0, len(result.Hits))
	for _, hit := range result.Hits {
		doc := map[string]interface{}{"id": hit.ID, "score": hit.Score}
		for field, value := range hit.Fields {
			doc[field] = value
		}
		hits = append(hits, doc)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"total": result.Total,
		"hits":  hits,
	})
}
