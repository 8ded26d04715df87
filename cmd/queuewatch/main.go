// queuewatch держит проекцию пациента или персонала поверх HTTP и WebSocket
// и печатает сверенную таблицу талонов после каждого изменения.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"queuecare/internal/auth"
	"queuecare/internal/config"
	"queuecare/internal/models"
	"queuecare/internal/projection"
	"queuecare/internal/ws"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		server          string
		token           string
		secret          string
		userID          string
		mode            string
		departmentsFile string
	)

	flagSet := pflag.NewFlagSet("queuewatch", pflag.ContinueOnError)
	flagSet.StringVar(&server, "server", "http://localhost:8080", "адрес сервера QueueCare")
	flagSet.StringVar(&token, "token", os.Getenv("QUEUECARE_TOKEN"), "access токен")
	flagSet.StringVar(&secret, "secret", "", "выпустить токен локально этим JWT_ACCESS_SECRET вместо --token")
	flagSet.StringVar(&userID, "user", "", "пользователь для локального токена и фильтра пациента")
	flagSet.StringVar(&mode, "mode", "patient", "проекция: patient или staff")
	flagSet.StringVar(&departmentsFile, "departments", "", "YAML-справочник отделений (по умолчанию встроенный)")

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	staffMode := mode == "staff"
	if !staffMode && mode != "patient" {
		return fmt.Errorf("неизвестный режим %q", mode)
	}

	if token == "" {
		if secret == "" || userID == "" {
			return errors.New("нужен --token или пара --secret и --user")
		}
		var err error
		token, err = auth.New(secret).GenerateToken(models.Viewer{ID: userID, IsStaff: staffMode}, 12*time.Hour)
		if err != nil {
			return err
		}
	}
	if !staffMode && userID == "" {
		viewer, err := auth.New(secret).ParseToken(token)
		if err != nil {
			return errors.New("для режима patient укажите --user")
		}
		userID = viewer.ID
	}

	departments := models.DefaultDepartments
	if departmentsFile != "" {
		var err error
		if departments, err = config.LoadDepartments(departmentsFile); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	source := ws.NewSource(server, token)
	var out sync.Mutex
	show := func(tickets []models.Ticket, staff *projection.Staff) {
		out.Lock()
		defer out.Unlock()
		render(os.Stdout, tickets, staff)
	}

	if staffMode {
		staff := projection.NewStaff(source, departments, projection.Options{})
		staff.OnChange(func(tickets []models.Ticket) { show(tickets, staff) })
		staff.Start(ctx)
		defer staff.Close()
	} else {
		patient := projection.NewPatient(source, userID, projection.Options{})
		patient.OnChange(func(tickets []models.Ticket) { show(tickets, nil) })
		patient.Start(ctx)
		defer patient.Close()
	}

	log.Printf("queuewatch: %s, режим %s", server, mode)
	<-ctx.Done()
	return nil
}
