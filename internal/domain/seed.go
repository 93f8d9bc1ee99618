package domain

import "github.com/m04kA/SMC-BarberScheduler/pkg/types"

// seedHours стандартная сетка слотов (обеденный перерыв в 12:00)
var seedHours = []types.TimeString{
	"09:00", "10:00", "11:00", "13:00", "14:00", "15:00", "16:00", "17:00", "18:00", "19:00",
}

// seedDays понедельник - суббота
var seedDays = []int{1, 2, 3, 4, 5, 6}

// SeedServices начальный набор услуг
func SeedServices() []Service {
	return []Service{
		{ID: "s1", Name: "Corte Clássico", Price: 60, Duration: 45,
			Description: "Corte de cabelo tradicional com acabamento premium e lavagem.", Icon: "fa-scissors"},
		{ID: "s2", Name: "Barba de Respeito", Price: 45, Duration: 30,
			Description: "Design de barba com toalha quente e massagem facial.", Icon: "fa-razor"},
		{ID: "s3", Name: "Combo Master", Price: 95, Duration: 75,
			Description: "Experiência completa: Corte de cabelo + Barba + Bebida de cortesia.", Icon: "fa-crown"},
		{ID: "s4", Name: "Corte Infantil", Price: 50, Duration: 40,
			Description: "Corte especial para os pequenos cavalheiros.", Icon: "fa-child"},
	}
}

// SeedAddons начальный набор дополнительных услуг
func SeedAddons() []Addon {
	return []Addon{
		{ID: "a1", Name: "Hidratação Facial", Price: 25, Duration: 15, Description: "Máscara hidratante e relaxante."},
		{ID: "a2", Name: "Sobrancelha", Price: 15, Duration: 10, Description: "Limpeza e design de sobrancelha."},
		{ID: "a3", Name: "Pigmentação de Barba", Price: 30, Duration: 20, Description: "Preenchimento de falhas com tintura especial."},
	}
}

// SeedStaff начальный состав мастеров
func SeedStaff() []Staff {
	newStaff := func(id, name, role, avatar, specialty string) Staff {
		return Staff{
			ID:             id,
			Name:           name,
			Role:           role,
			Avatar:         avatar,
			Specialty:      specialty,
			AvailableDays:  append([]int(nil), seedDays...),
			AvailableHours: append([]types.TimeString(nil), seedHours...),
		}
	}

	return []Staff{
		newStaff("b1", `Carlos "The Blade"`, "Master Barber", "https://picsum.photos/seed/carlos/200", "Fades e Degradês"),
		newStaff("b2", "Vinícius Vintage", "Senior Barber", "https://picsum.photos/seed/vinny/200", "Cortes Clássicos e Navalha"),
		newStaff("b3", "Sarah Style", "Top Stylist", "https://picsum.photos/seed/sarah/200", "Visagismo e Barbas Modernas"),
	}
}
