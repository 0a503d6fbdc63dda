package conversation

import (
	"context"
	"strings"
)

// Dispatcher разводит входящие события между пользовательской и
// операторской машинами. Операторское направление выбирается для
// команд с префиксом "admin:" и для оператора, который ждет
// подтверждения очистки
type Dispatcher struct {
	user       *Machine
	admin      *AdminMachine
	isOperator func(requesterID int64) bool
}

// NewDispatcher создает диспетчер событий
func NewDispatcher(user *Machine, admin *AdminMachine, isOperator func(requesterID int64) bool) *Dispatcher {
	return &Dispatcher{user: user, admin: admin, isOperator: isOperator}
}

// Dispatch направляет событие подходящей машине состояний
func (d *Dispatcher) Dispatch(ctx context.Context, event Event) ([]Prompt, error) {
	if d.isOperator(event.RequesterID) {
		if strings.HasPrefix(event.Payload, adminPrefix) {
			return d.admin.HandleEvent(ctx, event)
		}
		pending, err := d.admin.HasPendingConfirmation(ctx, event.RequesterID)
		if err != nil {
			return nil, err
		}
		if pending {
			return d.admin.HandleEvent(ctx, event)
		}
	}

	return d.user.HandleEvent(ctx, event)
}
