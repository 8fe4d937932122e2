// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package learning

import "learncenter/internal/models"

// DefaultFeaturedLimit is the size of the featured shelf.
const DefaultFeaturedLimit = 3

// Featured returns up to limit featured records in their original order.
// Category and user-type selectors play no part.
func Featured(records []models.Question, limit int) []models.Question {
	out := []models.Question{}
	if limit <= 0 {
		return out
	}
	for _, q := range records {
		if q.Featured {
			out = append(out, q)
			if len(out) == limit {
				break
			}
		}
	}
	return out
}

// ShelfVisible reports whether the featured shelf is shown: only while no
// search is committed.
func ShelfVisible(committedQuery string) bool {
	return committedQuery == ""
}
