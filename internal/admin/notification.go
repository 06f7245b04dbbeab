package admin

import (
	"errors"

	"zozikafe/internal/domain/machines"
)

type NotificationKind string

const (
	KindSuccess NotificationKind = "success"
	KindError   NotificationKind = "error"
	KindInfo    NotificationKind = "info"
)

// Notification is the transient message shown after an admin action.
type Notification struct {
	Kind    NotificationKind   `json:"kind"`
	Message machines.Bilingual `json:"message"`
}

func success(bg, en string) Notification {
	return Notification{Kind: KindSuccess, Message: machines.Bilingual{BG: bg, EN: en}}
}

func info(bg, en string) Notification {
	return Notification{Kind: KindInfo, Message: machines.Bilingual{BG: bg, EN: en}}
}

func failure(bg, en string) Notification {
	return Notification{Kind: KindError, Message: machines.Bilingual{BG: bg, EN: en}}
}

var deletePrompt = machines.Bilingual{
	BG: "Сигурни ли сте, че искате да изтриете тази машина?",
	EN: "Are you sure you want to delete this machine?",
}

// DeletePrompt is the question a Confirmer is asked before a delete.
func DeletePrompt() machines.Bilingual { return deletePrompt }

// NotificationFor maps an error returned by the controller to a message.
func NotificationFor(err error) Notification {
	switch {
	case errors.Is(err, ErrNoFeatures):
		return failure("Моля добавете поне една характеристика!", "Please add at least one feature!")
	case errors.Is(err, ErrNameRequired):
		return failure("Моля въведете име на машината!", "Please enter the machine name!")
	case errors.Is(err, ErrTypeRequired):
		return failure("Моля изберете тип на машината!", "Please choose the machine type!")
	case errors.Is(err, ErrInvalidStatus):
		return failure("Невалиден статус!", "Invalid status!")
	case errors.Is(err, ErrNotFound):
		return failure("Машината не е намерена.", "Machine not found.")
	case errors.Is(err, ErrCancelled):
		return info("Изтриването е отказано.", "Deletion cancelled.")
	default:
		return failure("Промените не бяха записани. Опитайте отново.", "Changes were not saved. Please try again.")
	}
}

func toggledNotification(s machines.Status) Notification {
	if s == machines.StatusAvailable {
		return success("Машината е маркирана като в наличност!", "Machine marked as available!")
	}
	return success("Машината е маркирана като продадена!", "Machine marked as sold!")
}
