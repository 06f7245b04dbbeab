package public

import "zozikafe/internal/domain/lang"

type variants = map[lang.Code]string

// pageText lists the translatable elements of the public page. Entries
// without a secondary variant stay in Bulgarian.
var pageText = []struct {
	id       string
	variants variants
}{
	{"brand", nil},
	{"nav.home", variants{lang.Primary: "Начало", lang.Secondary: "Home"}},
	{"nav.machines", variants{lang.Primary: "Машини", lang.Secondary: "Machines"}},
	{"nav.services", variants{lang.Primary: "Услуги", lang.Secondary: "Services"}},
	{"nav.contact", variants{lang.Primary: "Контакти", lang.Secondary: "Contact"}},
	{"nav.admin", variants{lang.Primary: "Админ", lang.Secondary: "Admin"}},
	{"hero.title", variants{lang.Primary: "Професионални кафе машини", lang.Secondary: "Professional Coffee Machines"}},
	{"hero.subtitle", variants{
		lang.Primary:   "Продажба, сервиз и поддръжка на еспресо машини за дома и бизнеса",
		lang.Secondary: "Sales, service and maintenance of espresso machines for home and business",
	}},
	{"machines.title", variants{lang.Primary: "Нашите машини", lang.Secondary: "Our Machines"}},
	{"machines.empty", variants{lang.Primary: "Очаквайте скоро нови машини.", lang.Secondary: "New machines coming soon."}},
	{"services.title", variants{lang.Primary: "Услуги", lang.Secondary: "Services"}},
	{"services.repair", variants{lang.Primary: "Ремонт и сервиз", lang.Secondary: "Repair & Service"}},
	{"services.install", variants{lang.Primary: "Монтаж и обучение", lang.Secondary: "Installation & Training"}},
	{"contact.title", variants{lang.Primary: "Свържете се с нас", lang.Secondary: "Get in Touch"}},
	{"contact.name", variants{lang.Primary: "Вашето име", lang.Secondary: "Your name"}},
	{"contact.email", variants{lang.Primary: "Имейл адрес", lang.Secondary: "Email address"}},
	{"contact.phone", variants{lang.Primary: "Телефон", lang.Secondary: "Phone"}},
	{"contact.message", variants{lang.Primary: "Вашето съобщение", lang.Secondary: "Your message"}},
	{"contact.inquiry", variants{lang.Primary: "Тип запитване", lang.Secondary: "Inquiry type"}},
	{"contact.inquiry.home", variants{lang.Primary: "Домашна машина", lang.Secondary: "Home machine"}},
	{"contact.inquiry.commercial", variants{lang.Primary: "Търговска машина", lang.Secondary: "Commercial machine"}},
	{"contact.inquiry.service", variants{lang.Primary: "Сервиз", lang.Secondary: "Service"}},
	{"contact.send", variants{lang.Primary: "Изпрати", lang.Secondary: "Send"}},
	{"footer.rights", variants{lang.Primary: "Всички права запазени.", lang.Secondary: "All rights reserved."}},
	{"footer.address", variants{lang.Primary: "София, България"}},
}

// NewPageSelector registers the public page text on a selector set to code.
func NewPageSelector(code lang.Code) *lang.Selector {
	sel := lang.NewSelector(lang.Primary)
	for _, e := range pageText {
		text := e.variants[lang.Primary]
		if e.id == "brand" {
			text = "ZoziKafe"
		}
		sel.Register(e.id, text, e.variants)
	}
	sel.Set(code)
	return sel
}
