package cards

import (
	"fmt"

	"github.com/markrenzo/portfolio-backend/internal/models"
)

// Variant - вариант представления карточки.
type Variant string

const (
	VariantWorkExperience Variant = "work_experience_card"
	VariantProject        Variant = "project_card"
	VariantSkill          Variant = "skill_card"
	VariantTool           Variant = "tool_card"
	VariantGallery        Variant = "gallery_card"
	VariantAbout          Variant = "about_card"
	VariantUnknown        Variant = "unknown_card"
)

// Состояния view-модели карточки.
type State string

const (
	StateReady   State = "ready"
	StateLoading State = "loading"
	StateError   State = "error"
)

// CardViewModel - всё, что нужно клиенту, чтобы показать карточку:
// вариант представления, данные либо сообщение об ошибке.
type CardViewModel struct {
	Identifier string          `json:"identifier"`
	State      State           `json:"state"`
	Variant    Variant         `json:"variant,omitempty"`
	Type       models.ItemType `json:"type,omitempty"`
	Data       interface{}     `json:"data,omitempty"`
	Message    string          `json:"message,omitempty"`
}

// variantByType - тотальное соответствие тип -> представление.
var variantByType = map[models.ItemType]Variant{
	models.TypeWorkExperience: VariantWorkExperience,
	models.TypeProject:        VariantProject,
	models.TypeSkill:          VariantSkill,
	models.TypeTool:           VariantTool,
	models.TypeGallery:        VariantGallery,
	models.TypeAbout:          VariantAbout,
}

// Resolver выбирает представление карточки по идентификатору,
// читая только предзагруженный кэш. Сетевых запросов здесь нет.
type Resolver struct {
	cache *Cache
}

// NewResolver создаёт резолвер поверх кэша.
func NewResolver(cache *Cache) *Resolver {
	return &Resolver{cache: cache}
}

// Resolve возвращает view-модель для идентификатора. Отсутствие записи в
// кэше - терминальное, видимое пользователю состояние ошибки; повторные
// вызовы дают тот же результат, автоматических ретраев нет.
func (r *Resolver) Resolve(identifier string) CardViewModel {
	// aboutmecard всегда резолвится в About, даже при пустом кэше.
	if identifier == models.AboutIdentifier {
		return CardViewModel{
			Identifier: identifier,
			State:      StateReady,
			Variant:    VariantAbout,
			Type:       models.TypeAbout,
			Data:       models.AboutMe(),
		}
	}

	if r.cache.Loading() {
		return CardViewModel{Identifier: identifier, State: StateLoading}
	}

	item, ok := r.cache.Get(identifier)
	if !ok {
		return CardViewModel{
			Identifier: identifier,
			State:      StateError,
			Variant:    VariantUnknown,
			Message:    fmt.Sprintf("Could not load %s", identifier),
		}
	}

	variant, ok := variantByType[item.Type]
	if !ok {
		variant = VariantUnknown
	}
	return CardViewModel{
		Identifier: identifier,
		State:      StateReady,
		Variant:    variant,
		Type:       item.Type,
		Data:       item.Data,
	}
}
