package main

import (
	"github.com/iotaledger/e-commerce-tools/internal/app"
	"go.uber.org/fx"
)

func main() {
	fx.New(app.CreateApp()).Run()
}
