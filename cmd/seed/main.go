// seed escribe la lista de productos en el almacenamiento configurado (STORAGE_DRIVER).
//
// Uso: go run ./cmd/seed [-file productos.csv] [-latin1] [-reset-history] [-reset]
// Sin -file usa la lista semilla. El CSV tiene columnas code;description;total (o separadas por coma).
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/jhoicas/control-inventario/internal/domain/entity"
	"github.com/jhoicas/control-inventario/internal/infrastructure/catalog"
	"github.com/jhoicas/control-inventario/internal/infrastructure/persistence"
	"github.com/jhoicas/control-inventario/internal/infrastructure/storage"
	"github.com/jhoicas/control-inventario/pkg/config"
	"github.com/jhoicas/control-inventario/pkg/logger"
)

func main() {
	file := flag.String("file", "", "CSV de productos (vacío = lista semilla)")
	latin1 := flag.Bool("latin1", false, "decodificar el CSV desde ISO-8859-1")
	resetHistory := flag.Bool("reset-history", false, "vaciar la bitácora de movimientos")
	resetAll := flag.Bool("reset", false, "borrar productos y bitácora (la API vuelve a la lista semilla)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	products := entity.InitialProducts()
	if *file != "" {
		f, err := os.Open(*file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
			os.Exit(1)
		}
		products, err = catalog.ReadProducts(f, catalog.ReadOptions{Latin1: *latin1})
		f.Close()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
			os.Exit(1)
		}
	}

	ctx := context.Background()
	store, err := storage.Open(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir almacenamiento %s: %v\n", cfg.Storage.Driver, err)
		os.Exit(1)
	}
	defer store.Close()

	stateStorage := persistence.NewStateStorage(store, log,
		persistence.WithDriverName(cfg.Storage.Driver),
		persistence.WithKeyPrefix(cfg.Storage.KeyPrefix),
	)
	if *resetAll {
		if err := stateStorage.Reset(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Borrar registros: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Registros borrados (driver %s)\n", cfg.Storage.Driver)
		return
	}

	state := stateStorage.Load(ctx)
	state.Products = products
	if *resetHistory {
		state.History = []entity.Transaction{}
	}

	if err := stateStorage.Save(ctx, state); err != nil {
		fmt.Fprintf(os.Stderr, "Guardar: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Productos escritos: %d (driver %s). Movimientos en bitácora: %d\n",
		len(state.Products), cfg.Storage.Driver, len(state.History))
}
