// cmd/saigon3-cms/main.go
package main

import (
	"context"
	"log"

	"github.com/dalemusser/waffle/app"

	"github.com/tranchon2702/saigon3-cms/internal/app/bootstrap"
)

func main() {
	if err := app.Run(context.Background(), bootstrap.Hooks); err != nil {
		log.Fatal(err)
	}
}
