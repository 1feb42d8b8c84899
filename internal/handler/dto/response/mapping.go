package response

import (
	"fmt"

	"github.com/jinzhu/copier"
)

// mustCopy maps a use case view onto its response shape. Both sides are fixed
// struct types, so a copier error is a programming error.
func mustCopy[T any](src any) *T {
	var dst T
	if err := copier.Copy(&dst, src); err != nil {
		panic(fmt.Sprintf("response mapping %T: %v", src, err))
	}
	return &dst
}
