package service

import (
	"context"
	"fmt"
	"html"
	"sync"
	"time"

	"ledgerboard/aggregator"
	"ledgerboard/config"
	"ledgerboard/logger"
	"ledgerboard/store"

	"golang.org/x/sync/errgroup"
	"gopkg.in/gomail.v2"
)

// 同时发送的提醒邮件上限
const maxConcurrentAlerts = 4

// mailer 为 *gomail.Dialer 的发送子集
type mailer interface {
	DialAndSend(m ...*gomail.Message) error
}

// BudgetAlerter 预算超支邮件提醒
// 同一预算在同一周期内只提醒一次，sent 记录已提醒的键及其周期结束时间
type BudgetAlerter struct {
	cfg    *config.EmailConfig
	dialer mailer

	mu   sync.Mutex
	sent map[string]time.Time
	wg   sync.WaitGroup
}

// NewBudgetAlerter 创建预算提醒服务
func NewBudgetAlerter(cfg *config.EmailConfig) *BudgetAlerter {
	return &BudgetAlerter{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		sent:   make(map[string]time.Time),
	}
}

// Check 检查所有预算，为新超支的预算发送提醒
func (s *BudgetAlerter) Check(ctx context.Context, snap *aggregator.Snapshot, now time.Time) error {
	if !s.cfg.Enabled {
		return nil
	}

	var pending []aggregator.BudgetProgress
	s.mu.Lock()
	for key, end := range s.sent {
		if now.After(end) {
			delete(s.sent, key)
		}
	}
	for _, p := range aggregator.EvaluateBudgets(snap, now) {
		if !p.IsOverBudget {
			continue
		}
		key := alertKey(p)
		if _, ok := s.sent[key]; ok {
			continue
		}
		s.sent[key] = p.Window.End
		pending = append(pending, p)
	}
	s.mu.Unlock()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentAlerts)
	for _, p := range pending {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				s.forget(p)
				return err
			}
			subject := fmt.Sprintf("【记账系统】预算超支提醒: %s", p.CategoryName)
			if err := s.sendEmail(s.cfg.To, subject, s.generateBudgetAlertBody(p)); err != nil {
				s.forget(p)
				return err
			}
			return nil
		})
	}
	return g.Wait()
}

// Listener 交易或预算变更后异步检查预算
func (s *BudgetAlerter) Listener() store.Listener {
	return func(ctx context.Context, ev store.Event, snap *aggregator.Snapshot) {
		if ev.Entity != store.EntityTransaction && ev.Entity != store.EntityBudget {
			return
		}
		ctx = context.WithoutCancel(ctx)
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			if err := s.Check(ctx, snap, ev.At); err != nil {
				logger.L().Warnw("发送预算提醒失败", "error", err)
			}
		}()
	}
}

// Wait 等待已触发的检查全部结束，关闭服务前调用
func (s *BudgetAlerter) Wait() {
	s.wg.Wait()
}

func alertKey(p aggregator.BudgetProgress) string {
	return p.Budget.ID + "@" + p.Window.Start.Format("2006-01-02")
}

// forget 发送失败时允许下次重试
func (s *BudgetAlerter) forget(p aggregator.BudgetProgress) {
	s.mu.Lock()
	delete(s.sent, alertKey(p))
	s.mu.Unlock()
}

// generateBudgetAlertBody 生成超支提醒邮件内容
func (s *BudgetAlerter) generateBudgetAlertBody(p aggregator.BudgetProgress) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body { font-family: 'Microsoft YaHei', Arial, sans-serif; background: #f5f5f5; margin: 0; padding: 20px; }
        .container { max-width: 600px; margin: 0 auto; background: #fff; border-radius: 12px; overflow: hidden; box-shadow: 0 4px 20px rgba(0,0,0,0.1); }
        .header { background: linear-gradient(135deg, #ef4444, #b91c1c); color: white; padding: 30px; text-align: center; }
        .header h1 { margin: 0; font-size: 24px; }
        .content { padding: 40px 30px; }
        .content p { color: #333; line-height: 1.8; margin: 0 0 20px; }
        table { width: 100%%; border-collapse: collapse; margin: 20px 0; }
        td { padding: 10px; border-bottom: 1px solid #eee; color: #333; }
        td.label { color: #6c757d; width: 40%%; }
        .over { color: #b91c1c; font-weight: bold; }
        .footer { background: #f8f9fa; padding: 20px 30px; text-align: center; color: #6c757d; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>💰 记账系统</h1>
        </div>
        <div class="content">
            <p>您好！</p>
            <p>类别 <strong>%s</strong> 的%s预算（%s）已超支：</p>
            <table>
                <tr><td class="label">统计周期</td><td>%s 至 %s</td></tr>
                <tr><td class="label">预算金额</td><td>%s</td></tr>
                <tr><td class="label">已支出</td><td>%s（%s）</td></tr>
                <tr><td class="label">超出金额</td><td class="over">%s</td></tr>
            </table>
        </div>
        <div class="footer">
            <p>此邮件由系统自动发送，请勿回复</p>
            <p>© 记账系统 - 您的个人财务管理助手</p>
        </div>
    </div>
</body>
</html>
`,
		html.EscapeString(p.CategoryName),
		periodText(string(p.Budget.Period)),
		html.EscapeString(p.AccountName),
		p.Window.Start.Format("2006-01-02"),
		p.Window.End.Format("2006-01-02"),
		aggregator.FormatMoney(p.Budget.Amount),
		aggregator.FormatMoney(p.Spent),
		aggregator.FormatPercent(p.Progress),
		aggregator.FormatMoney(p.OverAmount),
	)
}

func periodText(period string) string {
	switch period {
	case "weekly":
		return "每周"
	case "yearly":
		return "每年"
	default:
		return "每月"
	}
}

// sendEmail 发送邮件
func (s *BudgetAlerter) sendEmail(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.cfg.Username, s.cfg.From))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("发送邮件失败: %w", err)
	}

	return nil
}
