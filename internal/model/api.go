// Package model defines the data structures used throughout the application.
package model

import "time"

// API represents a catalog entry: a described external API endpoint together
// with a hand-written usage sample and the endpoint URL used by the code
// generator.
//
// Rating is a plain integer overwritten wholesale by every rating
// submission — there is no averaging and no rating history.
//
// Method is carried for completeness (it defaults to "GET" at creation)
// but nothing reads it yet; the generator always issues GET requests.
type API struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Tech        string    `json:"tech"`
	Description string    `json:"description"`
	URL         string    `json:"url"`      // link to the API's documentation/source
	Code        string    `json:"code"`     // hand-written sample shown on the listing
	Rating      int       `json:"rating"`   // last submitted rating, 0 until rated
	Endpoint    string    `json:"endpoint"` // literal URL interpolated into generated samples
	Method      string    `json:"method"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
