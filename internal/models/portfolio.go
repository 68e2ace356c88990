package models

// ItemType определяет вариант карточки портфолио.
type ItemType string

const (
	TypeWorkExperience ItemType = "work_experience"
	TypeProject        ItemType = "project"
	TypeTool           ItemType = "tool"
	TypeSkill          ItemType = "skill"
	TypeGallery        ItemType = "gallery"
	TypeAbout          ItemType = "about"
)

// PortfolioItem - размеченное объединение {type, data}, которое отдаёт API.
// Data содержит строку конкретной таблицы либо фиксированный About.
type PortfolioItem struct {
	Type ItemType    `json:"type"`
	Data interface{} `json:"data"`
}

// AboutIdentifier - синтетический идентификатор, не имеющий строки в базе.
const AboutIdentifier = "aboutmecard"

// About - синтетическая карточка aboutmecard, не привязанная к таблице.
type About struct {
	Name string `json:"name"`
	Role string `json:"role"`
	Bio  string `json:"bio"`
}

// AboutMe возвращает фиксированную карточку "обо мне". Содержимое не зависит
// от состояния базы.
func AboutMe() About {
	return About{
		Name: "Mark Renzo Mariveles",
		Role: "Full-Stack Developer & AI Specialist",
		Bio:  "Passionate about creating innovative digital solutions and helping businesses leverage AI technology.",
	}
}

// IdentifierInfo - пара идентификатор + описание для AI.
// Список таких пар задаёт словарь тегов, которые AI разрешено вставлять в ответ.
type IdentifierInfo struct {
	Identifier    string `db:"identifier" json:"identifier"`
	AIDescription string `db:"ai_description" json:"ai_description"`
}

// IdentifierCatalog - идентификаторы по категориям, порядок внутри категории
// соответствует display_order.
type IdentifierCatalog map[string][]IdentifierInfo

// Identifiers возвращает плоский список всех идентификаторов каталога.
func (c IdentifierCatalog) Identifiers() []string {
	var ids []string
	for _, infos := range c {
		for _, info := range infos {
			ids = append(ids, info.Identifier)
		}
	}
	return ids
}
