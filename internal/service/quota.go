package service

import (
	"github.com/sefazor/pixelmuse-backend/internal/models"
)

// CanGenerate, abonelik kaydına bakarak üretime izin verilip
// verilmeyeceğine karar verir. Saf fonksiyondur; karar her zaman taze
// okunmuş kayıt üzerinde verilmelidir.
//
// quota_limit == 0 "limit uygulanmaz" demektir: aktif abonelik sınırsız
// üretim yapabilir. Limitli planlarda quota_used limite ulaştığında üretim
// reddedilir.
func CanGenerate(sub *models.Subscription) error {
	if sub == nil || sub.Status != models.SubscriptionStatusActive {
		return ErrSubscriptionRequired
	}
	if sub.QuotaLimit > 0 && sub.QuotaUsed >= sub.QuotaLimit {
		return ErrQuotaExceeded
	}
	return nil
}
