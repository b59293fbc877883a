// syncctl opera el código de sincronización y los totales del mes desde la terminal,
// sobre el mismo almacenamiento que usa la API (STORAGE_DRIVER y demás variables).
//
// Uso:
//
//	syncctl export                imprime el código actual
//	syncctl import <código|->     restaura usuarios y clientes ("-" lee el código de stdin)
//	syncctl totals [YYYY-MM]      cobrado y adeudado del mes (por defecto el actual)
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/afero"

	"github.com/jhoicas/isp-ledger/internal/application/backup"
	domainbilling "github.com/jhoicas/isp-ledger/internal/domain/billing"
	"github.com/jhoicas/isp-ledger/internal/infrastructure/backend"
	"github.com/jhoicas/isp-ledger/internal/infrastructure/storage"
	"github.com/jhoicas/isp-ledger/pkg/config"
	"github.com/jhoicas/isp-ledger/pkg/logger"
	"github.com/jhoicas/isp-ledger/pkg/money"
)

const usage = "uso: syncctl export | import <código|-> | totals [YYYY-MM]"

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run ejecuta el comando y devuelve el código de salida; los defer (cierre del
// almacenamiento incluido) corren antes de que main llame a os.Exit.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fail := func(format string, a ...any) int {
		fmt.Fprintf(stderr, format+"\n", a...)
		return 1
	}
	if len(args) < 1 {
		return fail(usage)
	}

	cfg, err := config.Load()
	if err != nil {
		return fail("cargar configuración: %v", err)
	}
	log := logger.NewWithWriter(stderr, logger.Config{Env: cfg.App.Env, Level: "warn", Service: "syncctl"})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store, err := backend.Open(ctx, cfg, afero.NewOsFs(), log)
	if err != nil {
		return fail("abrir almacenamiento: %v", err)
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			fmt.Fprintf(stderr, "cerrar almacenamiento: %v\n", err)
		}
	}()

	users := storage.NewUserRepository(store.KV, log)
	customers := storage.NewCustomerRepository(store.KV, log)
	sync := backup.NewSyncUseCase(store.KV, users, customers, log)

	switch args[0] {
	case "export":
		out, err := sync.GenerateCode(ctx)
		if err != nil {
			return fail("generar código: %v", err)
		}
		fmt.Fprintln(stdout, out.Code)

	case "import":
		if len(args) < 2 {
			return fail(usage)
		}
		code := args[1]
		if code == "-" {
			raw, err := io.ReadAll(stdin)
			if err != nil {
				return fail("leer stdin: %v", err)
			}
			code = string(raw)
		}
		out, err := sync.Restore(ctx, code)
		if err != nil {
			return fail("restaurar: %v", err)
		}
		fmt.Fprintf(stdout, "usuarios restaurados: %t (%d)\n", out.UsersRestored, out.Users)
		fmt.Fprintf(stdout, "clientes restaurados: %t (%d)\n", out.CustomersRestored, out.Customers)

	case "totals":
		month := domainbilling.MonthKeyOf(time.Now())
		if len(args) > 1 {
			if month, err = domainbilling.ParseMonthKey(args[1]); err != nil {
				return fail("%v", err)
			}
		}
		list, err := customers.List(ctx)
		if err != nil {
			return fail("listar clientes: %v", err)
		}
		rows := domainbilling.FilterMonth(list, domainbilling.MonthFilter{Month: month, Status: domainbilling.FilterAll})
		st := domainbilling.Summarize(rows)
		fmt.Fprintf(stdout, "%s: %d clientes, cobrado %s, adeudado %s (pagados %d, parciales %d, pendientes %d)\n",
			month, len(rows), money.FormatCode(st.TotalCollected), money.FormatCode(st.TotalDue),
			st.PaidCount, st.PartialCount, st.DueCount)

		if store.Postgres != nil {
			collected, due, err := store.Postgres.RecordedTotals(ctx, month.String())
			if err != nil {
				return fail("totales en postgres: %v", err)
			}
			fmt.Fprintf(stdout, "registros guardados en postgres: cobrado %s, adeudado %s\n",
				money.FormatCode(collected), money.FormatCode(due))
		}

	default:
		return fail(usage)
	}
	return 0
}
