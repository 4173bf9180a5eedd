package view

import "fmt"

// Locales supported by the message catalog. The first one is the fallback.
var Locales = []string{"en", "ru"}

var catalog = map[string]map[string]string{
	"en": {
		"app.name": "Blogger platform",

		"nav.blogs":        "Blogs",
		"nav.posts":        "Posts",
		"nav.info":         "About",
		"nav.users":        "Users",
		"nav.audit":        "Audit",
		"nav.login":        "Sign in",
		"nav.logout":       "Sign out",
		"nav.registration": "Sign up",

		"action.edit":   "Edit",
		"action.delete": "Delete",
		"action.save":   "Save",
		"action.create": "Create",
		"action.send":   "Send",
		"action.cancel": "Cancel",

		"pager.prev": "Previous",
		"pager.next": "Next",
		"pager.page": "Page %d of %d",
		"pager.size": "Per page",

		"blogs.title":       "Blogs",
		"blogs.new":         "New blog",
		"blogs.edit":        "Edit blog",
		"blogs.empty":       "No blogs yet.",
		"blogs.website":     "Website",
		"blogs.name":        "Name",
		"blogs.description": "Description",

		"posts.title":             "Posts",
		"posts.new":               "New post",
		"posts.edit":              "Edit post",
		"posts.empty":             "No posts yet.",
		"posts.read_more":         "Read more",
		"posts.field_title":       "Title",
		"posts.short_description": "Short description",
		"posts.content":           "Content",
		"posts.blog":              "Blog",

		"comments.title":            "Comments",
		"comments.empty":            "No comments yet.",
		"comments.add":              "Leave a comment",
		"comments.login_to_comment": "Sign in to leave a comment",

		"info.title":        "About the platform",
		"info.about":        "Welcome to the blogger platform, a centrally managed content system.",
		"info.rights":       "Access rights",
		"info.anonymous":    "Visitors read blogs, posts and comments.",
		"info.user":         "Signed-in users also comment on posts.",
		"info.admin":        "The administrator manages blogs, posts, users and comments.",
		"info.status":       "Your status",
		"info.comment_hint": "Sign in to take part in discussions.",
		"status.anonymous":  "Not signed in",
		"status.user":       "Signed-in user",
		"status.admin":      "Administrator",

		"login.title":          "Sign in",
		"login.login_or_email": "Login or email",
		"login.password":       "Password",
		"login.submit":         "Sign in",
		"login.no_account":     "No account yet?",

		"registration.title":    "Sign up",
		"registration.login":    "Login",
		"registration.email":    "Email",
		"registration.password": "Password",
		"registration.submit":   "Sign up",

		"confirmation.title":   "Email confirmation",
		"confirmation.ok":      "Your email is confirmed. You can sign in now.",
		"confirmation.failed":  "The confirmation code is invalid or has expired.",
		"confirmation.missing": "The confirmation link carries no code.",

		"account.title": "My account",
		"account.id":    "User id",
		"account.login": "Login",
		"account.email": "Email",

		"users.title":   "Users",
		"users.new":     "New user",
		"users.empty":   "No users.",
		"users.role":    "Role",
		"users.created": "Registered",

		"audit.title":    "Admin actions",
		"audit.empty":    "Nothing recorded yet.",
		"audit.when":     "When",
		"audit.actor":    "Actor",
		"audit.action":   "Action",
		"audit.resource": "Resource",
		"audit.status":   "Status",
		"audit.filter":   "Filter",

		"error.title":     "Error",
		"error.not_found": "The page you are looking for does not exist.",
		"error.forbidden": "You do not have access to this page.",
		"error.internal":  "Unexpected server error.",

		"notice.not_found":        "Not found.",
		"notice.unauthorized":     "Your session has expired. Please sign in again.",
		"notice.forbidden":        "The server refused the operation.",
		"notice.invalid":          "The server rejected the data.",
		"notice.backend_failed":   "The server failed to answer. Try again later.",
		"notice.unavailable":      "The server is unreachable. Try again later.",
		"notice.invalid_form":     "Check the highlighted fields.",
		"notice.bad_credentials":  "Wrong login or password.",
		"notice.session_failed":   "Could not save the session. Try again.",
		"flash.signed_in":         "Signed in.",
		"flash.signed_out":        "Signed out.",
		"flash.registered":        "Check your email to confirm the registration.",
		"flash.blog_created":      "Blog created.",
		"flash.blog_updated":      "Blog updated.",
		"flash.blog_deleted":      "Blog deleted.",
		"flash.post_created":      "Post created.",
		"flash.post_updated":      "Post updated.",
		"flash.post_deleted":      "Post deleted.",
		"flash.comment_added":     "Comment added.",
		"flash.comment_updated":   "Comment updated.",
		"flash.comment_deleted":   "Comment deleted.",
		"flash.user_created":      "User created.",
		"flash.user_deleted":      "User deleted.",
		"flash.role_updated":      "Role updated.",
		"flash.operation_failed":  "The operation failed. Nothing was changed.",
		"flash.comment_forbidden": "You cannot change this comment.",

		"form.required":                "This field is required.",
		"form.blog_name_length":        "The name must be between 1 and 15 characters.",
		"form.blog_description_length": "The description must be between 1 and 500 characters.",
		"form.website_length":          "The website address must be at most 100 characters.",
		"form.website_url":             "Enter a valid website address.",
		"form.post_title_length":       "The title must be between 2 and 30 characters.",
		"form.post_short_length":       "The short description must be between 3 and 50 characters.",
		"form.post_content_length":     "The content must be between 5 and 1000 characters.",
		"form.blog_required":           "Choose a blog.",
		"form.comment_required":        "Enter a comment.",
		"form.comment_length":          "The comment must be between 20 and 300 characters.",
		"form.login_length":            "The login must be between 3 and 10 characters.",
		"form.login_pattern":           "Only letters, digits, '_' and '-' are allowed.",
		"form.email":                   "Enter a valid email address.",
		"form.password_length":         "The password must be between 6 and 20 characters.",
		"form.role":                    "Unknown role.",
	},
	"ru": {
		"app.name": "Платформа блогеров",

		"nav.blogs":        "Блоги",
		"nav.posts":        "Посты",
		"nav.info":         "О платформе",
		"nav.users":        "Пользователи",
		"nav.audit":        "Журнал",
		"nav.login":        "Войти",
		"nav.logout":       "Выйти",
		"nav.registration": "Регистрация",

		"action.edit":   "Редактировать",
		"action.delete": "Удалить",
		"action.save":   "Сохранить",
		"action.create": "Создать",
		"action.send":   "Отправить",
		"action.cancel": "Отмена",

		"pager.prev": "Назад",
		"pager.next": "Вперёд",
		"pager.page": "Страница %d из %d",
		"pager.size": "На странице",

		"blogs.title":       "Блоги",
		"blogs.new":         "Создать блог",
		"blogs.edit":        "Редактирование блога",
		"blogs.empty":       "Блогов пока нет.",
		"blogs.website":     "Сайт",
		"blogs.name":        "Название",
		"blogs.description": "Описание",

		"posts.title":             "Посты",
		"posts.new":               "Создать пост",
		"posts.edit":              "Редактирование поста",
		"posts.empty":             "Постов пока нет.",
		"posts.read_more":         "Читать",
		"posts.field_title":       "Заголовок",
		"posts.short_description": "Краткое описание",
		"posts.content":           "Содержание",
		"posts.blog":              "Блог",

		"comments.title":            "Комментарии",
		"comments.empty":            "Комментариев пока нет.",
		"comments.add":              "Оставить комментарий",
		"comments.login_to_comment": "Войдите, чтобы оставить комментарий",

		"info.title":        "О платформе",
		"info.about":        "Добро пожаловать на платформу для блогеров! Это централизованная система управления контентом.",
		"info.rights":       "Система прав доступа",
		"info.anonymous":    "Неавторизованные пользователи читают блоги, посты и комментарии.",
		"info.user":         "Авторизованные пользователи также комментируют посты.",
		"info.admin":        "Администратор управляет блогами, постами, пользователями и комментариями.",
		"info.status":       "Ваш статус",
		"info.comment_hint": "Для получения доступа к комментариям необходимо авторизоваться.",
		"status.anonymous":  "Неавторизован",
		"status.user":       "Авторизованный пользователь",
		"status.admin":      "Администратор",

		"login.title":          "Вход",
		"login.login_or_email": "Логин или email",
		"login.password":       "Пароль",
		"login.submit":         "Войти",
		"login.no_account":     "Нет аккаунта?",

		"registration.title":    "Регистрация",
		"registration.login":    "Логин",
		"registration.email":    "Email",
		"registration.password": "Пароль",
		"registration.submit":   "Зарегистрироваться",

		"confirmation.title":   "Подтверждение email",
		"confirmation.ok":      "Email подтверждён. Теперь можно войти.",
		"confirmation.failed":  "Код подтверждения неверен или устарел.",
		"confirmation.missing": "В ссылке нет кода подтверждения.",

		"account.title": "Мой аккаунт",
		"account.id":    "Идентификатор",
		"account.login": "Логин",
		"account.email": "Email",

		"users.title":   "Пользователи",
		"users.new":     "Создать пользователя",
		"users.empty":   "Пользователей нет.",
		"users.role":    "Роль",
		"users.created": "Зарегистрирован",

		"audit.title":    "Действия администратора",
		"audit.empty":    "Записей пока нет.",
		"audit.when":     "Когда",
		"audit.actor":    "Кто",
		"audit.action":   "Действие",
		"audit.resource": "Ресурс",
		"audit.status":   "Статус",
		"audit.filter":   "Фильтр",

		"error.title":     "Ошибка",
		"error.not_found": "Страница не найдена.",
		"error.forbidden": "У вас нет доступа к этой странице.",
		"error.internal":  "Непредвиденная ошибка сервера.",

		"notice.not_found":        "Не найдено.",
		"notice.unauthorized":     "Сессия истекла. Войдите снова.",
		"notice.forbidden":        "Сервер отклонил операцию.",
		"notice.invalid":          "Сервер отклонил данные.",
		"notice.backend_failed":   "Сервер не смог ответить. Попробуйте позже.",
		"notice.unavailable":      "Сервер недоступен. Попробуйте позже.",
		"notice.invalid_form":     "Проверьте отмеченные поля.",
		"notice.bad_credentials":  "Неверный логин или пароль.",
		"notice.session_failed":   "Не удалось сохранить сессию. Попробуйте снова.",
		"flash.signed_in":         "Вы вошли.",
		"flash.signed_out":        "Вы вышли.",
		"flash.registered":        "Проверьте почту, чтобы подтвердить регистрацию.",
		"flash.blog_created":      "Блог создан.",
		"flash.blog_updated":      "Блог обновлён.",
		"flash.blog_deleted":      "Блог удалён.",
		"flash.post_created":      "Пост создан.",
		"flash.post_updated":      "Пост обновлён.",
		"flash.post_deleted":      "Пост удалён.",
		"flash.comment_added":     "Комментарий добавлен.",
		"flash.comment_updated":   "Комментарий обновлён.",
		"flash.comment_deleted":   "Комментарий удалён.",
		"flash.user_created":      "Пользователь создан.",
		"flash.user_deleted":      "Пользователь удалён.",
		"flash.role_updated":      "Роль обновлена.",
		"flash.operation_failed":  "Операция не выполнена. Ничего не изменилось.",
		"flash.comment_forbidden": "Вы не можете изменить этот комментарий.",

		"form.required":                "Обязательное поле.",
		"form.blog_name_length":        "Название должно быть от 1 до 15 символов.",
		"form.blog_description_length": "Описание должно быть от 1 до 500 символов.",
		"form.website_length":          "Адрес сайта не длиннее 100 символов.",
		"form.website_url":             "Введите корректный адрес сайта.",
		"form.post_title_length":       "Заголовок должен быть от 2 до 30 символов.",
		"form.post_short_length":       "Краткое описание должно быть от 3 до 50 символов.",
		"form.post_content_length":     "Содержание должно быть от 5 до 1000 символов.",
		"form.blog_required":           "Выберите блог.",
		"form.comment_required":        "Введите комментарий.",
		"form.comment_length":          "Комментарий должен быть от 20 до 300 символов.",
		"form.login_length":            "Логин должен быть от 3 до 10 символов.",
		"form.login_pattern":           "Допустимы только буквы, цифры, '_' и '-'.",
		"form.email":                   "Введите корректный email.",
		"form.password_length":         "Пароль должен быть от 6 до 20 символов.",
		"form.role":                    "Неизвестная роль.",
	},
}

// SupportedLocale reports whether the catalog has messages for locale.
func SupportedLocale(locale string) bool {
	_, ok := catalog[locale]
	return ok
}

// Translate looks key up in locale, then in the fallback locale. Unknown
// keys are returned as is. args are applied with fmt.Sprintf.
func Translate(locale string, key string, args ...any) string {
	msg, ok := catalog[locale][key]
	if !ok {
		msg, ok = catalog[Locales[0]][key]
	}
	if !ok {
		msg = key
	}
	if len(args) > 0 {
		return fmt.Sprintf(msg, args...)
	}
	return msg
}
