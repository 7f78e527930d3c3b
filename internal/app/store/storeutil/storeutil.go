// Package storeutil holds small query helpers shared by the Mongo stores.
package storeutil

import "go.mongodb.org/mongo-driver/mongo/options"

// Paginate returns find options with skip and limit for a 1-based page.
func Paginate(limit, page int64) *options.FindOptions {
	if limit <= 0 {
		limit = 50
	}
	if page <= 0 {
		page = 1
	}
	return options.Find().SetLimit(limit).SetSkip((page - 1) * limit)
}
