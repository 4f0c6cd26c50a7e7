package recipe

import (
	"fmt"
	"strings"

	"foodgram/internal/repository"
)

const (
	// ShoppingListFilename — имя вложения при скачивании списка покупок.
	ShoppingListFilename = "shop_list.txt"

	shoppingListHeader = "      Список покупок"
)

// RenderShoppingList собирает текстовый документ списка покупок.
// Формат строк исторический, клиенты разбирают его как есть:
// "{n}. {название} -{количество} {единица}".
func RenderShoppingList(items []repository.ShoppingListItem) string {
	var b strings.Builder
	b.WriteString(shoppingListHeader)
	b.WriteByte('\n')

	for n, item := range items {
		fmt.Fprintf(&b, "%d. %s -%d %s\n", n+1, item.Name, item.TotalAmount, item.MeasurementUnit)
	}

	return b.String()
}
