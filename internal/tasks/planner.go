package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"queuecare/internal/load"
	"queuecare/internal/models"
	"queuecare/internal/storage"
)

const jobTimeout = 30 * time.Second

// LoadSource: откуда задача статистики берет нагрузку отделений.
type LoadSource interface {
	DepartmentLoads(ctx context.Context, viewer models.Viewer) ([]load.DepartmentLoad, error)
}

// schedulerViewer: служебный пользователь, от имени которого работают задачи.
var schedulerViewer = models.Viewer{ID: "scheduler", IsStaff: true}

// ResetTicketNumbers сбрасывает счетчик номеров талонов, чтобы нумерация начиналась заново каждый день.
func ResetTicketNumbers(seq storage.Sequencer) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		if err := seq.Reset(ctx); err != nil {
			log.Println("Ошибка при сбросе номеров талонов:", err)
			return
		}
		log.Println("Нумерация талонов сброшена.")
	}
}

// LogQueueStats пишет в лог текущую нагрузку отделений и обновляет метрики.
func LogQueueStats(source LoadSource) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		loads, err := source.DepartmentLoads(ctx, schedulerViewer)
		if err != nil {
			log.Println("Ошибка при подсчете нагрузки отделений:", err)
			return
		}
		log.Printf("Нагрузка отделений: всего %d активных талонов (%s)", load.Total(loads), formatLoads(loads))
	}
}

func formatLoads(loads []load.DepartmentLoad) string {
	out := ""
	for i, l := range loads {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprintf("%s=%d", l.Code, l.CurrentLoad)
	}
	return out
}

// InitScheduler инициализирует планировщик cron-задач.
func InitScheduler(seq storage.Sequencer, source LoadSource, resetSpec, statsSpec string) (*cron.Cron, error) {
	c := cron.New(cron.WithSeconds())

	// Сброс нумерации талонов, по умолчанию каждый день в полночь.
	if _, err := c.AddFunc(resetSpec, ResetTicketNumbers(seq)); err != nil {
		return nil, fmt.Errorf("cron-задача ResetTicketNumbers: %w", err)
	}

	// Статистика очереди, по умолчанию каждые 5 минут.
	if _, err := c.AddFunc(statsSpec, LogQueueStats(source)); err != nil {
		return nil, fmt.Errorf("cron-задача LogQueueStats: %w", err)
	}

	c.Start()
	log.Println("Cron-планировщик запущен.")
	return c, nil
}
