package listing

import (
	"strings"

	"github.com/skillswap/skillswap-backend/internal/domain/entity"
)

// IsPotentialMatch отмечает объявление как подходящее зрителю: объявление
// упоминает навык, который зритель хочет получить, и зритель предлагает
// что-то из того, что хочет владелец. Сравнение подстрочное и без учёта регистра,
// поэтому "Art" совпадает с "Cart".
func IsPotentialMatch(viewer *entity.User, l *entity.SkillListing) bool {
	if viewer == nil || l.IsOwnedBy(viewer.ID) {
		return false
	}
	return offersWanted(viewer.SkillsWanted, l) && wantsOffered(l.SkillsWanted, viewer.SkillsOffered)
}

func offersWanted(wanted []string, l *entity.SkillListing) bool {
	title := strings.ToLower(l.Title)
	description := strings.ToLower(l.Description)
	for _, skill := range wanted {
		s := strings.ToLower(skill)
		if strings.Contains(title, s) || strings.Contains(description, s) {
			return true
		}
	}
	return false
}

func wantsOffered(listingWants, viewerOffers []string) bool {
	for _, w := range listingWants {
		w = strings.ToLower(w)
		for _, o := range viewerOffers {
			o = strings.ToLower(o)
			if strings.Contains(w, o) || strings.Contains(o, w) {
				return true
			}
		}
	}
	return false
}
