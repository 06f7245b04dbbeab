package admin

import "zozikafe/internal/domain/lang"

type variants = map[lang.Code]string

var pageText = []struct {
	id       string
	variants variants
}{
	{"admin.title", variants{lang.Primary: "ZoziKafe Админ", lang.Secondary: "ZoziKafe Admin"}},
	{"admin.site_language", variants{lang.Primary: "Език на сайта:", lang.Secondary: "Site language:"}},
	{"nav.site", variants{lang.Primary: "Към сайта", lang.Secondary: "View site"}},
	{"nav.logout", variants{lang.Primary: "Изход", lang.Secondary: "Log out"}},
	{"stats.total", variants{lang.Primary: "Общо машини", lang.Secondary: "Total machines"}},
	{"stats.available", variants{lang.Primary: "Налични", lang.Secondary: "Available"}},
	{"stats.sold", variants{lang.Primary: "Продадени", lang.Secondary: "Sold"}},
	{"tab.add", variants{lang.Primary: "Добави машина", lang.Secondary: "Add machine"}},
	{"tab.edit", variants{lang.Primary: "Редактирай машина", lang.Secondary: "Edit machine"}},
	{"tab.inventory", variants{lang.Primary: "Наличност", lang.Secondary: "Inventory"}},
	{"form.name", variants{lang.Primary: "Име на машината", lang.Secondary: "Machine name"}},
	{"form.type_bg", variants{lang.Primary: "Тип (БГ)", lang.Secondary: "Type (BG)"}},
	{"form.type_en", variants{lang.Primary: "Тип (EN)", lang.Secondary: "Type (EN)"}},
	{"form.description", variants{lang.Primary: "Описание (Markdown)", lang.Secondary: "Description (Markdown)"}},
	{"form.status", variants{lang.Primary: "Статус", lang.Secondary: "Status"}},
	{"form.image", variants{lang.Primary: "Снимка (URL)", lang.Secondary: "Image (URL)"}},
	{"form.features", variants{lang.Primary: "Характеристики", lang.Secondary: "Features"}},
	{"form.feature_bg", variants{lang.Primary: "Характеристика (БГ)", lang.Secondary: "Feature (BG)"}},
	{"form.feature_en", variants{lang.Primary: "Характеристика (EN)", lang.Secondary: "Feature (EN)"}},
	{"form.add_feature", variants{lang.Primary: "+ Добави характеристика", lang.Secondary: "+ Add feature"}},
	{"form.remove_feature", variants{lang.Primary: "− Премахни последната", lang.Secondary: "− Remove last"}},
	{"form.save", variants{lang.Primary: "Запази машината", lang.Secondary: "Save machine"}},
	{"form.update", variants{lang.Primary: "Обнови машината", lang.Secondary: "Update machine"}},
	{"form.cancel", variants{lang.Primary: "Отказ", lang.Secondary: "Cancel"}},
	{"form.clear", variants{lang.Primary: "Изчисти", lang.Secondary: "Clear"}},
	{"status.available", variants{lang.Primary: "Наличен", lang.Secondary: "Available"}},
	{"status.sold", variants{lang.Primary: "Продаден", lang.Secondary: "Sold"}},
	{"action.edit", variants{lang.Primary: "Редактирай", lang.Secondary: "Edit"}},
	{"action.delete", variants{lang.Primary: "Изтрий", lang.Secondary: "Delete"}},
	{"action.mark_sold", variants{lang.Primary: "Маркирай като продаден", lang.Secondary: "Mark as sold"}},
	{"action.mark_available", variants{lang.Primary: "Маркирай като наличен", lang.Secondary: "Mark as available"}},
	{"inventory.empty", variants{lang.Primary: "Няма добавени машини.", lang.Secondary: "No machines yet."}},
	{"confirm.yes", variants{lang.Primary: "Да, изтрий", lang.Secondary: "Yes, delete"}},
	{"confirm.no", variants{lang.Primary: "Не", lang.Secondary: "No"}},
	{"login.title", variants{lang.Primary: "Вход за администратор", lang.Secondary: "Admin sign in"}},
	{"login.password", variants{lang.Primary: "Парола", lang.Secondary: "Password"}},
	{"login.submit", variants{lang.Primary: "Вход", lang.Secondary: "Sign in"}},
	{"login.hint", variants{
		lang.Primary:   "Паролата само скрива админ страниците от случайни посетители.",
		lang.Secondary: "The password only keeps casual visitors out of the admin pages.",
	}},
	{"login.failed", variants{lang.Primary: "Грешна парола.", lang.Secondary: "Wrong password."}},
	{"login.throttled", variants{lang.Primary: "Твърде много опити. Опитайте отново след малко.", lang.Secondary: "Too many attempts. Try again shortly."}},
}

// NewPageSelector registers the admin page text on a selector set to code.
func NewPageSelector(code lang.Code) *lang.Selector {
	sel := lang.NewSelector(lang.Primary)
	for _, e := range pageText {
		sel.Register(e.id, e.variants[lang.Primary], e.variants)
	}
	sel.Set(code)
	return sel
}
