// internal/pkg/i18n/messages.go
package i18n

var catalog = map[string]map[string]string{
	French: {
		// Nav
		"home":               "Accueil",
		"categories":         "Catégories",
		"shop":               "Boutique",
		"search_placeholder": "Rechercher...",
		"login_register":     "Connexion / Inscription",
		"my_account":         "Mon Compte",
		"logout":             "Déconnexion",
		"cart":               "Panier",
		"add_btn":            "Ajouter",
		"currency":           "MAD",
		"unit_separator":     "/",
		"copyright":          "Tous droits réservés.",

		// Cart and checkout
		"cart_added":        "Article ajouté au panier",
		"cart_updated":      "Panier mis à jour",
		"cart_removed":      "Article retiré du panier",
		"cart_empty":        "Votre panier est vide",
		"out_of_stock":      "%s est en rupture de stock",
		"invalid_quantity":  "Quantité invalide",
		"product_not_found": "Produit introuvable",
		"checkout_missing":  "Veuillez renseigner votre nom, téléphone, adresse et ville",
		"order_placed":      "Commande #%d enregistrée, merci !",
		"order_failed":      "Impossible d'enregistrer la commande, veuillez réessayer",

		// Accounts
		"login_success":     "Connexion réussie.",
		"login_invalid":     "Nom d'utilisateur/e-mail ou mot de passe invalide.",
		"login_required":    "Veuillez vous connecter pour continuer.",
		"username_taken":    "Ce nom d'utilisateur existe déjà.",
		"email_taken":       "Cet e-mail est déjà utilisé.",
		"password_mismatch": "Les mots de passe ne correspondent pas.",
		"password_weak":     "Mot de passe trop faible : 8 caractères minimum, lettres et chiffres.",
		"register_success":  "Inscription réussie ! Bienvenue.",
		"logged_out":        "Vous avez été déconnecté.",
		"profile_updated":   "Profil mis à jour.",
		"reset_sent":        "Si un compte existe pour %s, un lien de réinitialisation a été envoyé.",

		// Admin
		"access_denied":      "Accès refusé.",
		"staff_only":         "Espace réservé à l'équipe.",
		"product_added":      "Produit ajouté",
		"product_updated":    "Produit mis à jour",
		"product_deleted":    "Produit supprimé",
		"category_added":     "Catégorie ajoutée",
		"category_updated":   "Catégorie mise à jour",
		"category_deleted":   "Catégorie supprimée",
		"category_in_use":    "Cette catégorie contient encore des produits",
		"category_exists":    "Cette catégorie existe déjà",
		"user_added":         "Utilisateur créé",
		"user_updated":       "Utilisateur mis à jour",
		"user_deleted":       "Utilisateur supprimé",
		"self_modification":  "Vous ne pouvez pas modifier vos propres droits ni supprimer votre compte",
		"permissions_saved":  "Permissions enregistrées",
		"order_status_saved": "Statut de la commande mis à jour",
		"invalid_transition": "Ce changement de statut n'est pas autorisé",
		"content_saved":      "Contenu enregistré",
		"image_uploaded":     "Image téléversée",
		"invalid_input":      "Données invalides",
		"server_error":       "Une erreur est survenue, veuillez réessayer",
		"section_deleted":    "Section supprimée",
		"image_deleted":      "Image supprimée",
		"user_promoted":      "Utilisateur promu modérateur",
		"user_demoted":       "Utilisateur rétrogradé en client",
		"not_found":          "Page introuvable",
		"too_many_attempts":  "Trop de tentatives, réessayez dans une minute",
		"password_incorrect": "Mot de passe actuel incorrect",
	},
	Arabic: {
		// Nav
		"home":               "الرئيسية",
		"categories":         "التصنيفات",
		"shop":               "المتجر",
		"search_placeholder": "بحث...",
		"login_register":     "دخول / تسجيل",
		"my_account":         "حسابي",
		"logout":             "خروج",
		"cart":               "السلة",
		"add_btn":            "إضافة",
		"currency":           "درهم",
		"unit_separator":     "/",
		"copyright":          "جميع الحقوق محفوظة.",

		// Cart and checkout
		"cart_added":        "تمت إضافة المنتج إلى السلة",
		"cart_updated":      "تم تحديث السلة",
		"cart_removed":      "تمت إزالة المنتج من السلة",
		"cart_empty":        "سلتك فارغة",
		"out_of_stock":      "%s غير متوفر حاليا",
		"invalid_quantity":  "كمية غير صالحة",
		"product_not_found": "المنتج غير موجود",
		"checkout_missing":  "يرجى إدخال الاسم والهاتف والعنوان والمدينة",
		"order_placed":      "تم تسجيل الطلب رقم %d، شكرا لكم!",
		"order_failed":      "تعذر تسجيل الطلب، يرجى المحاولة مرة أخرى",

		// Accounts
		"login_success":     "تم تسجيل الدخول بنجاح.",
		"login_invalid":     "اسم المستخدم أو البريد الإلكتروني أو كلمة المرور غير صحيحة.",
		"login_required":    "يرجى تسجيل الدخول للمتابعة.",
		"username_taken":    "اسم المستخدم موجود مسبقا.",
		"email_taken":       "البريد الإلكتروني مستعمل مسبقا.",
		"password_mismatch": "كلمتا المرور غير متطابقتين.",
		"password_weak":     "كلمة المرور ضعيفة: 8 أحرف على الأقل مع حروف وأرقام.",
		"register_success":  "تم التسجيل بنجاح! مرحبا بك.",
		"logged_out":        "تم تسجيل الخروج.",
		"profile_updated":   "تم تحديث الملف الشخصي.",
		"reset_sent":        "إذا كان هناك حساب مرتبط بـ %s، فقد تم إرسال رابط إعادة التعيين.",

		// Admin
		"access_denied":      "تم رفض الوصول.",
		"staff_only":         "هذا القسم مخصص للفريق.",
		"product_added":      "تمت إضافة المنتج",
		"product_updated":    "تم تحديث المنتج",
		"product_deleted":    "تم حذف المنتج",
		"category_added":     "تمت إضافة التصنيف",
		"category_updated":   "تم تحديث التصنيف",
		"category_deleted":   "تم حذف التصنيف",
		"category_in_use":    "هذا التصنيف لا يزال يحتوي على منتجات",
		"category_exists":    "هذا التصنيف موجود مسبقا",
		"user_added":         "تم إنشاء المستخدم",
		"user_updated":       "تم تحديث المستخدم",
		"user_deleted":       "تم حذف المستخدم",
		"self_modification":  "لا يمكنك تعديل صلاحياتك أو حذف حسابك",
		"permissions_saved":  "تم حفظ الصلاحيات",
		"order_status_saved": "تم تحديث حالة الطلب",
		"invalid_transition": "تغيير الحالة هذا غير مسموح",
		"content_saved":      "تم حفظ المحتوى",
		"image_uploaded":     "تم رفع الصورة",
		"invalid_input":      "بيانات غير صالحة",
		"server_error":       "حدث خطأ، يرجى المحاولة مرة أخرى",
		"section_deleted":    "تم حذف القسم",
		"image_deleted":      "تم حذف الصورة",
		"user_promoted":      "تمت ترقية المستخدم إلى مشرف",
		"user_demoted":       "تم إرجاع المستخدم إلى زبون",
		"not_found":          "الصفحة غير موجودة",
		"too_many_attempts":  "محاولات كثيرة، حاول مرة أخرى بعد دقيقة",
		"password_incorrect": "كلمة المرور الحالية غير صحيحة",
	},
}
